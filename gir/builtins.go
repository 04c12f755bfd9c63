package gir

// glibBasicNames maps GIR's lowercase C-ish basic type names to the
// internal scalar names interned by model.NewLibrary (spec.md §3
// "synthetic internal namespace holding built-in scalars").
var glibBasicNames = map[string]string{
	"none":     "None",
	"gboolean": "Boolean",
	"gint8":    "Int8",
	"guint8":   "UInt8",
	"gint16":   "Int16",
	"guint16":  "UInt16",
	"gint":     "Int32",
	"gint32":   "Int32",
	"guint":    "UInt32",
	"guint32":  "UInt32",
	"glong":    "Int64",
	"gulong":   "UInt64",
	"gint64":   "Int64",
	"guint64":  "UInt64",
	"gfloat":   "Float",
	"gdouble":  "Double",
	"utf8":     "Utf8",
	"filename": "Filename",
	"gpointer": "Pointer",
	"gconstpointer": "Pointer",
	"gchar":    "Char",
	"guchar":   "UInt8",
	"gunichar": "UniChar",
	"gsize":    "Size",
	"gssize":   "SSize",
	"GType":    "GType",
}
