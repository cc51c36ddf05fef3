package zcl

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// CommandParam is a positional, order-significant parameter of a
// CommandPrototype.
type CommandParam struct {
	Name string
	Type DataType
}

// CommandPrototype is a cluster command's call signature: its cluster and
// command codes plus its ordered parameter list. Bind turns it into a
// concrete Invocation.
type CommandPrototype struct {
	ClusterCode uint16
	Code        uint8
	Name        string
	Params      []CommandParam
}

// Attribute is a named, typed slot on a cluster. Size is nil
// for variable-length types (the two string types) and the fixed byte
// width otherwise.
type Attribute struct {
	ClusterCode uint16
	Code        uint16
	Name        string
	Type        DataType
	TypeCode    byte
	Size        *uint8
}

// Enum is a top-level named integer enumeration declared by the XML
// schema, keyed by its normalised item names.
type Enum struct {
	Name  string
	Items map[string]int64
}

// Cluster groups related commands and attributes under a 16-bit code. A
// cluster may be extended after construction by a <clusterExtension>
// matched on Code.
type Cluster struct {
	Name       string
	Define     string
	Code       uint16
	Commands   map[string]*CommandPrototype
	Attributes map[string]*Attribute
}

// Schema is the root of the loaded ZCL description: every cluster and
// top-level enum, keyed by normalised name. Attributes hold only their
// cluster's code (a value, not a reference), so Schema owns the only
// cycle-free tree of clusters and enums.
type Schema struct {
	Clusters map[string]*Cluster
	Enums    map[string]*Enum
}

func newSchema() *Schema {
	return &Schema{
		Clusters: make(map[string]*Cluster),
		Enums:    make(map[string]*Enum),
	}
}

func newCluster() *Cluster {
	return &Cluster{
		Commands:   make(map[string]*CommandPrototype),
		Attributes: make(map[string]*Attribute),
	}
}

// --- XML shape ---

type commandXML struct {
	Name string   `xml:"name,attr"`
	Code string   `xml:"code,attr"`
	Args []argXML `xml:"arg"`
}

type argXML struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type attributeXML struct {
	Code string `xml:"code,attr"`
	Type string `xml:"type,attr"`
	Name string `xml:",chardata"`
}

type clusterXML struct {
	Name       string         `xml:"name"`
	Define     string         `xml:"define"`
	Code       string         `xml:"code"`
	Commands   []commandXML   `xml:"command"`
	Attributes []attributeXML `xml:"attribute"`
}

type clusterExtensionXML struct {
	Code       string         `xml:"code,attr"`
	Commands   []commandXML   `xml:"command"`
	Attributes []attributeXML `xml:"attribute"`
}

type enumXML struct {
	Name  string    `xml:"name,attr"`
	Items []itemXML `xml:"item"`
}

type itemXML struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// LoadSchema parses each XML file in order into a single Schema. Later
// files may extend clusters defined by earlier files via
// <clusterExtension code="...">; within a single load, a later command or
// attribute sharing a normalised name with an earlier one replaces it
// (last-wins — see DESIGN.md).
func LoadSchema(paths ...string) (*Schema, error) {
	s := newSchema()
	for _, path := range paths {
		if err := s.loadFile(path); err != nil {
			return nil, fmt.Errorf("load schema file %s: %w", path, err)
		}
	}
	return s, nil
}

func (s *Schema) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.loadReader(f)
}

// LoadSchemaReader parses a single XML document from r into a fresh
// Schema. It is the in-memory counterpart of LoadSchema, useful for tests
// and for embedding a schema document rather than reading it from disk.
func LoadSchemaReader(r io.Reader) (*Schema, error) {
	s := newSchema()
	if err := s.loadReader(r); err != nil {
		return nil, err
	}
	return s, nil
}

// loadReader walks the XML token stream looking for <cluster>,
// <clusterExtension>, and <enum> elements at any depth, rather than
// assuming a fixed nesting shape.
func (s *Schema) loadReader(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "cluster":
			var cx clusterXML
			if err := dec.DecodeElement(&cx, &se); err != nil {
				return fmt.Errorf("decode cluster: %w", err)
			}
			if err := s.addCluster(cx); err != nil {
				return err
			}
		case "clusterExtension":
			var ex clusterExtensionXML
			if err := dec.DecodeElement(&ex, &se); err != nil {
				return fmt.Errorf("decode clusterExtension: %w", err)
			}
			if err := s.extendCluster(ex); err != nil {
				return err
			}
		case "enum":
			var en enumXML
			if err := dec.DecodeElement(&en, &se); err != nil {
				return fmt.Errorf("decode enum: %w", err)
			}
			s.addEnum(en)
		}
	}
	return nil
}

func (s *Schema) addCluster(cx clusterXML) error {
	code, err := parseCode(cx.Code)
	if err != nil {
		return fmt.Errorf("cluster %s: %w", cx.Name, err)
	}

	c := newCluster()
	c.Name = cx.Name
	c.Define = cx.Define
	c.Code = uint16(code)

	if err := c.addCommands(uint16(code), cx.Commands); err != nil {
		return err
	}
	c.addAttributes(uint16(code), cx.Attributes)

	s.Clusters[Normalize(cx.Name)] = c
	return nil
}

func (s *Schema) extendCluster(ex clusterExtensionXML) error {
	code, err := parseCode(ex.Code)
	if err != nil {
		return fmt.Errorf("clusterExtension: %w", err)
	}

	for _, c := range s.Clusters {
		if c.Code != uint16(code) {
			continue
		}
		if err := c.addCommands(c.Code, ex.Commands); err != nil {
			return err
		}
		c.addAttributes(c.Code, ex.Attributes)
		return nil
	}

	log.Warn().Uint64("code", code).Msg("clusterExtension does not match any loaded cluster")
	return nil
}

func (s *Schema) addEnum(en enumXML) {
	e := &Enum{Name: en.Name, Items: make(map[string]int64, len(en.Items))}
	for _, item := range en.Items {
		v, err := parseCode(item.Value)
		if err != nil {
			log.Warn().Str("enum", en.Name).Str("item", item.Name).Err(err).Msg("skipping enum item with unparseable value")
			continue
		}
		e.Items[Normalize(item.Name)] = int64(v)
	}
	s.Enums[Normalize(en.Name)] = e
}

func (c *Cluster) addCommands(clusterCode uint16, cmds []commandXML) error {
	for _, cmd := range cmds {
		code, err := parseCode(cmd.Code)
		if err != nil {
			return fmt.Errorf("command %s: %w", cmd.Name, err)
		}
		proto := &CommandPrototype{
			ClusterCode: clusterCode,
			Code:        uint8(code),
			Name:        cmd.Name,
			Params:      make([]CommandParam, 0, len(cmd.Args)),
		}
		for _, arg := range cmd.Args {
			proto.Params = append(proto.Params, CommandParam{
				Name: arg.Name,
				Type: DataType(arg.Type),
			})
		}
		c.Commands[Normalize(cmd.Name)] = proto
	}
	return nil
}

func (c *Cluster) addAttributes(clusterCode uint16, attrs []attributeXML) {
	for _, attr := range attrs {
		code, err := parseCode(attr.Code)
		if err != nil {
			log.Warn().Str("attribute", attr.Name).Err(err).Msg("skipping attribute with unparseable code")
			continue
		}
		tag := DataType(attr.Type)
		a := &Attribute{
			ClusterCode: clusterCode,
			Code:        uint16(code),
			Name:        attr.Name,
			Type:        tag,
			TypeCode:    TypeCode(tag),
		}
		if width, ok := FixedWidth(tag); ok && !isStringStorage(tag) && !isByteStringStorage(tag) {
			w := uint8(width)
			a.Size = &w
		}
		c.Attributes[Normalize(attr.Name)] = a
	}
}

func isStringStorage(tag DataType) bool {
	return tag == CharString || tag == LongCharString
}

func isByteStringStorage(tag DataType) bool {
	return tag == OctetString || tag == LongOctetString
}

// parseCode parses an XML-declared integer that may be written as a
// decimal literal or a "0x..." hex literal.
func parseCode(s string) (uint64, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("parse code %q: %w", s, err)
	}
	return uint64(v), nil
}

// Command looks up a command prototype on cluster by its normalised name.
func (c *Cluster) Command(name string) (*CommandPrototype, bool) {
	p, ok := c.Commands[Normalize(name)]
	return p, ok
}

// AttributeByName looks up an attribute on cluster by its normalised name.
func (c *Cluster) AttributeByName(name string) (*Attribute, bool) {
	a, ok := c.Attributes[Normalize(name)]
	return a, ok
}

// Cluster looks up a cluster on the schema by its normalised name.
func (s *Schema) Cluster(name string) (*Cluster, bool) {
	c, ok := s.Clusters[Normalize(name)]
	return c, ok
}

// Enum looks up an enum on the schema by its normalised name.
func (s *Schema) Enum(name string) (*Enum, bool) {
	e, ok := s.Enums[Normalize(name)]
	return e, ok
}
