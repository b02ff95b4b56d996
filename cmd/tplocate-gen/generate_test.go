package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestIdentifier(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"index.tpl", "TemplateIndex"},
		{"mail/password-reset.tpl", "TemplateMailPasswordReset"},
		{"mail/deep/reset.Tpl", "TemplateMailDeepReset"},
		{"404.tpl", "Template404"},
		{"über_uns.tpl", "TemplateÜberUns"},
		{"noext", "TemplateNoext"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, identifier(tt.in))
		})
	}
}

func TestIdentifiers_Collisions(t *testing.T) {
	t.Parallel()
	got := identifiers([]string{"a-b.tpl", "a/b.tpl", "a_b.tpl", "a/b2.tpl"})
	assert.Equal(t, []string{"TemplateAB", "TemplateAB2", "TemplateAB3", "TemplateAB22"}, got)
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, generate(&buf, "views", []string{"index.tpl", "mail/welcome.tpl"}))
	src := buf.String()

	_, err := parser.ParseFile(token.NewFileSet(), "names_gen.go", src, parser.AllErrors)
	require.NoError(t, err, src)
	assert.Contains(t, src, "// Code generated by tplocate-gen. DO NOT EDIT.")
	assert.Contains(t, src, "package views")
	assert.Regexp(t, regexp.MustCompile(`TemplateIndex\s+= "index.tpl"`), src)
	assert.Regexp(t, regexp.MustCompile(`TemplateMailWelcome\s+= "mail/welcome.tpl"`), src)
	assert.Regexp(t, regexp.MustCompile(`var All = \[\]string\{\s*TemplateIndex,\s*TemplateMailWelcome,\s*\}`), src)
}

func TestGenerate_Empty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, generate(&buf, "views", nil))
	src := buf.String()
	_, err := parser.ParseFile(token.NewFileSet(), "names_gen.go", src, parser.AllErrors)
	require.NoError(t, err, src)
	assert.NotContains(t, src, "const")
	assert.Contains(t, src, "var All = []string{}")
}
