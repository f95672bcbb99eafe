package stdlib

import (
	"testing"

	"github.com/suji-lang/suji/internal/value"
)

func TestJSONRoundTrip(t *testing.T) {
	src := value.NewMap()
	key, _ := value.ToMapKey(value.String("name"))
	src.Set(key, value.String("Suji"))
	listKey, _ := value.ToMapKey(value.String("nums"))
	src.Set(listKey, value.NewList([]value.Value{value.NumberFromInt(1), value.NumberFromInt(2)}))

	encoded, err := jsonStringify([]value.Value{src})
	if err != nil {
		t.Fatalf("jsonStringify: %v", err)
	}
	s, ok := encoded.(value.String)
	if !ok {
		t.Fatalf("expected a String, got %#v", encoded)
	}

	decoded, err := jsonParse([]value.Value{s})
	if err != nil {
		t.Fatalf("jsonParse: %v", err)
	}
	m, ok := decoded.(*value.Map)
	if !ok {
		t.Fatalf("expected a Map, got %#v", decoded)
	}
	nameKey, _ := value.ToMapKey(value.String("name"))
	got, ok := m.Get(nameKey)
	if !ok {
		t.Fatal("expected round-tripped map to contain \"name\"")
	}
	if !value.Equal(got, value.String("Suji")) {
		t.Fatalf("got %#v, want String(Suji)", got)
	}
}

func TestJSONParseRejectsInvalidSource(t *testing.T) {
	_, err := jsonParse([]value.Value{value.String("not json")})
	if err == nil {
		t.Fatal("expected an error parsing invalid JSON")
	}
	re, ok := err.(*value.RuntimeError)
	if !ok || re.Kind != value.JSONParseError {
		t.Fatalf("got %#v, want JSONParseError", err)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	src := value.NewMap()
	key, _ := value.ToMapKey(value.String("ok"))
	src.Set(key, value.Boolean(true))

	encoded, err := yamlStringify([]value.Value{src})
	if err != nil {
		t.Fatalf("yamlStringify: %v", err)
	}
	s, ok := encoded.(value.String)
	if !ok {
		t.Fatalf("expected a String, got %#v", encoded)
	}

	decoded, err := yamlParse([]value.Value{s})
	if err != nil {
		t.Fatalf("yamlParse: %v", err)
	}
	m, ok := decoded.(*value.Map)
	if !ok {
		t.Fatalf("expected a Map, got %#v", decoded)
	}
	okKey, _ := value.ToMapKey(value.String("ok"))
	got, ok := m.Get(okKey)
	if !ok || !value.Equal(got, value.Boolean(true)) {
		t.Fatalf("got %#v, want Boolean(true)", got)
	}
}

func TestTOMLUnavailable(t *testing.T) {
	_, err := tomlUnavailable(value.TOMLParseError)([]value.Value{value.String("x = 1")})
	if err == nil {
		t.Fatal("expected toml:parse to always fail")
	}
	re, ok := err.(*value.RuntimeError)
	if !ok || re.Kind != value.TOMLParseError {
		t.Fatalf("got %#v, want TOMLParseError", err)
	}
}

func TestTextNormalize(t *testing.T) {
	got, err := textNormalize([]value.Value{value.String("é"), value.String("nfc")})
	if err != nil {
		t.Fatalf("textNormalize: %v", err)
	}
	s, ok := got.(value.String)
	if !ok || string(s) != "é" {
		t.Fatalf("got %#v, want composed é", got)
	}
}

func TestTextFoldCase(t *testing.T) {
	got, err := textFoldCase([]value.Value{value.String("STRASSE")})
	if err != nil {
		t.Fatalf("textFoldCase: %v", err)
	}
	s, ok := got.(value.String)
	if !ok || string(s) != "strasse" {
		t.Fatalf("got %#v, want \"strasse\"", got)
	}
}

func TestVirtualRootShape(t *testing.T) {
	root := VirtualRoot()
	std, ok := root["std"]
	if !ok || std.Children == nil {
		t.Fatal("expected a \"std\" node with children")
	}
	for _, name := range []string{"json", "yaml", "toml", "text"} {
		if _, ok := std.Children[name]; !ok {
			t.Fatalf("expected std:%s to be registered", name)
		}
	}
}
