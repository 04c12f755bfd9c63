package gir

import (
	"encoding/xml"

	"github.com/gtk-rs/gir-go/model"
)

func newTestLibrary() *model.Library {
	return model.NewLibrary()
}

func attrList(kv map[string]string) []xml.Attr {
	out := make([]xml.Attr, 0, len(kv))
	for k, v := range kv {
		out = append(out, xml.Attr{Name: xml.Name{Local: k}, Value: v})
	}
	return out
}
