package main

import (
	"io"
	"path"
	"strconv"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
)

const identPrefix = "Template"

// generate writes a Go file declaring one constant per name and an All slice.
func generate(w io.Writer, pkg string, names []string) error {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by tplocate-gen. DO NOT EDIT.")

	idents := identifiers(names)
	if len(names) > 0 {
		defs := make([]jen.Code, 0, len(names))
		for i, name := range names {
			defs = append(defs, jen.Id(idents[i]).Op("=").Lit(name))
		}
		f.Comment("Template names, relative to their root.")
		f.Const().Defs(defs...)
	}

	f.Comment("All lists every template name in sorted order.")
	f.Var().Id("All").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, id := range idents {
			g.Line().Id(id)
		}
		if len(idents) > 0 {
			g.Line()
		}
	})
	return f.Render(w)
}

// identifiers maps template names to unique exported Go identifiers:
// "mail/password-reset.tpl" becomes "TemplateMailPasswordReset".
func identifiers(names []string) []string {
	taken := make(map[string]bool, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		base := identifier(name)
		id := base
		for n := 2; taken[id]; n++ {
			id = base + strconv.Itoa(n)
		}
		taken[id] = true
		out[i] = id
	}
	return out
}

func identifier(name string) string {
	name = strings.TrimSuffix(name, path.Ext(name))
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	b.WriteString(identPrefix)
	for _, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}
