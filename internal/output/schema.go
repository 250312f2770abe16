// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// schemaTag is a row key discovered from a struct's json tags (--schema flag).
type schemaTag struct {
	Name string
	Kind string
}

// print renders the tag into its display form.
func (t schemaTag) print() string {
	if t.Kind == "" {
		return t.Name
	}
	return fmt.Sprintf("%-12s %s", t.Name, t.Kind)
}

// maxSchemaDepth limits the depth of schema walking to prevent infinite
// recursion.
const maxSchemaDepth = 2

// NewTag builds a schemaTag from a json tag value. The holder prefix builds
// dotted names for nested structs. "-" and empty names yield the zero tag.
func NewTag(holder string, tagValue string, kind reflect.Kind) schemaTag {
	name := strings.Split(tagValue, ",")[0]
	if name == "" || name == "-" {
		return schemaTag{}
	}
	if holder != "" {
		name = holder + "." + name
	}
	return schemaTag{Name: name, Kind: kind.String()}
}

// DumpSchema writes a sorted list of row keys for the provided type to the
// provided writer. If w is nil, os.Stdout is used.
func DumpSchema(prefix string, typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Row keys that are directly available to the --attrs, --filter and --sort
flags. Dotted keys address nested values.`)
	fmt.Fprintln(w, "")

	tags := dumpSchemaWalker(prefix, typ, 0)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

// dumpSchemaWalker recursively walks a struct type discovering json tags.
// Embedded structs contribute their fields at the same level.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	tags := make([]schemaTag, 0)

	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return tags
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		ft := field.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}

		if field.Anonymous && ft.Kind() == reflect.Struct {
			tags = append(tags, dumpSchemaWalker(holder, ft, depth)...)
			continue
		}

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}

		tag := NewTag(holder, tagValue, ft.Kind())
		if tag.Name == "" {
			continue
		}

		if ft.Kind() == reflect.Struct && depth < maxSchemaDepth {
			tags = append(tags, dumpSchemaWalker(tag.Name, ft, depth+1)...)
			continue
		}

		tags = append(tags, tag)
	}

	return tags
}
