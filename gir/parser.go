package gir

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gtk-rs/gir-go/model"
)

// Parser streams one .gir document, registering discovered types into a
// shared Library. One Parser is created per document; Parse orchestrates
// transitively loading every <include>.
type Parser struct {
	lib       *model.Library
	searchDir []string
	// loaded tracks namespace names already fully parsed, so a diamond
	// include (A includes B and C, both include D) loads D once.
	loaded map[string]bool
	// loading tracks the namespaces currently being parsed, for cycle
	// detection across the include graph.
	loading []string
}

// Parse loads the .gir file at rootPath as the Main namespace, transitively
// loading every namespace it (or its includes) names, and returns the
// resulting Library. Per spec.md §4.1, any parse error — malformed XML,
// missing required attribute, unresolved stub, or include cycle — is fatal
// and partial progress is discarded.
func Parse(rootPath string, searchDirs []string) (*model.Library, error) {
	p := &Parser{
		lib:       model.NewLibrary(),
		searchDir: searchDirs,
		loaded:    make(map[string]bool),
	}
	if err := p.parseFile(rootPath, true); err != nil {
		return nil, err
	}
	if main, ok := p.lib.Main(); ok {
		if unresolved := p.lib.Unresolved(); len(unresolved) > 0 {
			names := make([]string, 0, len(unresolved))
			for _, tid := range unresolved {
				names = append(names, p.lib.QualifiedName(tid))
			}
			return nil, fmt.Errorf("gir: unresolved forward references after parsing %s: %v", main.Name, names)
		}
	}
	return p.lib, nil
}

// parseFile opens path and streams it. isMain marks the root invocation,
// whose <namespace> becomes the library's Main namespace (id 1); every
// namespace encountered afterwards, whether root or transitively included,
// reuses EnsureNamespace so the first one created is still Main.
func (p *Parser) parseFile(path string, isMain bool) error {
	f, err := os.Open(path)
	if err != nil {
		return errf(Position{File: path}, "%v", err)
	}
	defer f.Close()
	return p.parseReader(path, f)
}

func (p *Parser) parseReader(path string, r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errf(Position{File: path, Line: lineOf(dec)}, "xml: %v", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "repository" {
			return errf(Position{File: path, Line: lineOf(dec)}, "expected <repository>, found <%s>", start.Name.Local)
		}
		return p.parseRepository(path, dec, start)
	}
}

func lineOf(dec *xml.Decoder) int {
	// encoding/xml doesn't expose a stable line counter pre-1.19 InputOffset
	// based position; approximate via InputOffset for diagnostics purposes.
	return int(dec.InputOffset())
}

func (p *Parser) parseRepository(path string, dec *xml.Decoder, start xml.StartElement) error {
	pos := Position{File: path, Line: lineOf(dec)}
	_ = newAttrs("repository", pos, start.Attr) // no required attributes on <repository> itself

	// Includes are loaded after this file's own <namespace>, so the root
	// file's namespace is the first one created and becomes Main.
	var includes []attrs
	loadIncludes := func() error {
		for _, ia := range includes {
			if err := p.handleInclude(ia); err != nil {
				return err
			}
		}
		return nil
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return loadIncludes()
		}
		if err != nil {
			return errf(pos, "xml: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			childPos := Position{File: path, Line: lineOf(dec)}
			switch t.Name.Local {
			case "include":
				ia := newAttrs("include", childPos, t.Attr)
				if err := dec.Skip(); err != nil {
					return err
				}
				includes = append(includes, ia)
			case "package":
				if err := dec.Skip(); err != nil {
					return err
				}
			case "namespace":
				if err := p.parseNamespaceElement(path, dec, t); err != nil {
					return err
				}
			default:
				logUnknown("repository", t.Name.Local)
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "repository" {
				return loadIncludes()
			}
		}
	}
}

// handleInclude resolves an <include name=... version=...> by searching
// searchDir for "<name>-<version>.gir", rejecting cycles with the full
// cycle path named per spec.md §4.1.
func (p *Parser) handleInclude(a attrs) error {
	name, err := a.require("name")
	if err != nil {
		return err
	}
	version := a.str("version")

	for _, l := range p.loading {
		if l == name {
			cyclePath := append(append([]string{}, p.loading...), name)
			return &CycleError{Path: cyclePath}
		}
	}
	if p.loaded[name] {
		return nil
	}

	file := name
	if version != "" {
		file = fmt.Sprintf("%s-%s", name, version)
	}
	path, ok := p.findGir(file)
	if !ok {
		return errf(a.pos, "cannot find included namespace %q (version %q) in search path", name, version)
	}

	p.loading = append(p.loading, name)
	err = p.parseFile(path, false)
	p.loading = p.loading[:len(p.loading)-1]
	if err != nil {
		return err
	}
	p.loaded[name] = true
	return nil
}

func (p *Parser) findGir(base string) (string, bool) {
	for _, dir := range p.searchDir {
		candidate := filepath.Join(dir, base+".gir")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// logUnknown reports an unrecognized child element — spec.md §4.1 "Unknown
// children are logged and skipped", never fatal.
func logUnknown(parent, child string) {
	fmt.Fprintf(os.Stderr, "gir: warning: unknown element <%s> inside <%s>, skipping\n", child, parent)
}
