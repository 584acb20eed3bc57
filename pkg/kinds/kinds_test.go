package kinds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/semval/internal/messages"
	"github.com/mesh-intelligence/semval/pkg/types"
	"github.com/mesh-intelligence/semval/pkg/value"
)

func newFactory(t *testing.T) *value.Factory {
	t.Helper()
	f := value.NewFactory(value.Env{Messages: messages.New()})
	require.NoError(t, Register(f))
	return f
}

func parse(t *testing.T, f *value.Factory, typeID, text string) *value.Value {
	t.Helper()
	v, err := f.New(typeID)
	require.NoError(t, err)
	v.SetUserValue(text, "")
	return v
}

func TestRegister(t *testing.T) {
	f := newFactory(t)
	assert.Equal(t, []string{TypeBoolean, TypeNumber, TypeText, TypeURI, TypePage}, f.TypeIDs())

	err := Register(f)
	assert.ErrorIs(t, err, types.ErrDuplicateType)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		typeID    string
		text      string
		wantKeys  []string
		wantWiki  string
		wantError string
	}{
		{"text trimmed", TypeText, "  hello world ", []string{"hello world"}, "hello world", ""},
		{"text NFC", TypeText, "été", []string{"été"}, "été", ""},
		{"text empty", TypeText, "   ", nil, "", "Empty strings are not accepted."},
		{"number plain", TypeNumber, "42", []string{"42", ""}, "42", ""},
		{"number with unit", TypeNumber, "1,250.5 km", []string{"1250.5", "km"}, "1250.5 km", ""},
		{"number exponent", TypeNumber, "-3e2m", []string{"-300", "m"}, "-300 m", ""},
		{"number unit starting with e", TypeNumber, "5em", []string{"5", "em"}, "5 em", ""},
		{"number invalid", TypeNumber, "many", nil, "", `"many" is not a number.`},
		{"number bad unit", TypeNumber, "5 km2", nil, "", `"km2" is not declared as a valid unit of measurement.`},
		{"boolean yes", TypeBoolean, "Yes", []string{"1"}, "true", ""},
		{"boolean off", TypeBoolean, "off", []string{"0"}, "false", ""},
		{"boolean invalid", TypeBoolean, "maybe", nil, "", `"maybe" is not recognized as a Boolean (true/false) value.`},
		{"uri normalised", TypeURI, "HTTPS://Example.ORG/Path", []string{"https://example.org/Path"}, "https://example.org/Path", ""},
		{"uri mailto", TypeURI, "mailto:someone@example.org", []string{"mailto:someone@example.org"}, "mailto:someone@example.org", ""},
		{"uri relative", TypeURI, "/just/a/path", nil, "", `URIs of the form "/just/a/path" are not allowed.`},
		{"page main namespace", TypePage, "main page", []string{"Main_page", "0", "Main page"}, "Main page", ""},
		{"page namespace", TypePage, "user: jane doe", []string{"Jane_doe", "2", "Jane doe"}, "User:Jane doe", ""},
		{"page unknown prefix", TypePage, "Foo:Bar", []string{"Foo:Bar", "0", "Foo:Bar"}, "Foo:Bar", ""},
		{"page illegal", TypePage, "a|b", nil, "", `"a|b" is not a valid page name.`},
	}
	f := newFactory(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := parse(t, f, tt.typeID, tt.text)

			assert.True(t, v.IsSet())
			if tt.wantError != "" {
				assert.False(t, v.IsValid())
				assert.Equal(t, []string{tt.wantError}, v.Errors())
				return
			}
			require.True(t, v.IsValid(), v.ErrorText())
			assert.Equal(t, tt.wantKeys, v.Keys())
			assert.Equal(t, tt.wantWiki, v.WikiValue())
			assert.Len(t, v.Keys(), v.Signature().Len())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := map[string][]string{
		TypeText:    {"hello", "Ünïcödé text"},
		TypeNumber:  {"0", "1e21", "-0.125 kg", "1,000"},
		TypeBoolean: {"true", "no"},
		TypeURI:     {"http://example.org/a?b=c", "urn:isbn:0451450523"},
		TypePage:    {"Main Page", "Category:Rivers", "Property:Has height"},
	}
	f := newFactory(t)
	for typeID, texts := range inputs {
		for _, text := range texts {
			t.Run(typeID+"/"+text, func(t *testing.T) {
				v := parse(t, f, typeID, text)
				require.True(t, v.IsValid(), v.ErrorText())

				fromKeys, err := f.New(typeID)
				require.NoError(t, err)
				fromKeys.SetKeys(v.Keys())
				assert.Equal(t, v.Hash(), fromKeys.Hash())

				fromWiki := parse(t, f, typeID, v.WikiValue())
				assert.Equal(t, v.Hash(), fromWiki.Hash())
			})
		}
	}
}

func TestShortKeys(t *testing.T) {
	tests := []struct {
		typeID    string
		keys      []string
		wantValid bool
		wantWiki  string
	}{
		{TypeNumber, []string{"5"}, true, "5"},
		{TypeNumber, []string{"five"}, false, ""},
		{TypePage, []string{"Main_Page"}, true, "Main Page"},
		{TypePage, []string{"Main_Page", "x"}, false, ""},
		{TypePage, []string{"Main_Page", "3"}, false, ""},
		{TypePage, []string{"Rivers", "14", "rivers, all"}, true, "Category:Rivers"},
		{TypeBoolean, []string{"2"}, false, ""},
		{TypeText, []string{""}, false, ""},
		{TypeURI, []string{"nope"}, false, ""},
	}
	f := newFactory(t)
	for _, tt := range tests {
		t.Run(tt.typeID, func(t *testing.T) {
			v, err := f.New(tt.typeID)
			require.NoError(t, err)

			v.SetKeys(tt.keys)

			assert.Equal(t, tt.wantValid, v.IsValid())
			assert.Equal(t, tt.wantWiki, v.WikiValue())
		})
	}
}

func TestShortText(t *testing.T) {
	f := newFactory(t)
	tests := []struct {
		name   string
		typeID string
		keys   []string
		mode   value.OutputMode
		format string
		want   string
	}{
		{"number grouped", TypeNumber, []string{"1250000.5", "m"}, value.ModeWiki, "", "1,250,000.5 m"},
		{"number plain", TypeNumber, []string{"1250000.5", "m"}, value.ModeWiki, value.FormatPlain, "1.2500005e+06 m"},
		{"boolean labels", TypeBoolean, []string{"1"}, value.ModeWiki, "ja,nein", "ja"},
		{"boolean plain", TypeBoolean, []string{"0"}, value.ModeWiki, value.FormatPlain, "0"},
		{"uri html", TypeURI, []string{"http://example.org/?a=1&b=2"}, value.ModeHTML, "", `<a href="http://example.org/?a=1&amp;b=2">http://example.org/?a=1&amp;b=2</a>`},
		{"uri wiki", TypeURI, []string{"http://example.org/"}, value.ModeWiki, "", "[http://example.org/]"},
		{"page wiki", TypePage, []string{"Jane_Doe", "2"}, value.ModeWiki, "", "[[User:Jane Doe|Jane Doe]]"},
		{"page plain", TypePage, []string{"Jane_Doe", "2"}, value.ModeWiki, value.FormatPlain, "User:Jane Doe"},
		{"text html", TypeText, []string{"a < b"}, value.ModeHTML, "", "a &lt; b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := f.New(tt.typeID)
			require.NoError(t, err)
			v.SetOutputFormat(tt.format)
			v.SetKeys(tt.keys)

			assert.Equal(t, tt.want, v.ShortText(tt.mode))
		})
	}
}

func TestTextAbbreviation(t *testing.T) {
	f := newFactory(t)
	long := "This sentence is clearly longer than forty-two characters."
	v, err := f.New(TypeText)
	require.NoError(t, err)
	v.SetKeys([]string{long})

	assert.Equal(t, "This sentence is clearly longer than forty…", v.ShortText(value.ModeWiki))
	assert.Equal(t, long, v.LongText(value.ModeWiki))

	v.SetOutputFormat(value.FormatPlain)
	assert.Equal(t, long, v.ShortText(value.ModeWiki))
}

func TestShortTextFromUserValue(t *testing.T) {
	f := newFactory(t)
	tests := []struct {
		name    string
		typeID  string
		text    string
		caption string
		mode    value.OutputMode
		want    string
	}{
		{"text html escapes", TypeText, "<script>x</script>", "", value.ModeHTML, "&lt;script&gt;x&lt;/script&gt;"},
		{"text abbreviates", TypeText, "This sentence is clearly longer than forty-two characters.", "", value.ModeWiki, "This sentence is clearly longer than forty…"},
		{"page html keeps link", TypePage, "main page", "", value.ModeHTML, `<a href="/wiki/Main_page">main page</a>`},
		{"page wiki caption", TypePage, "main page", "", value.ModeWiki, "[[Main page|main page]]"},
		{"page explicit caption", TypePage, "main page", "<home>", value.ModeHTML, `<a href="/wiki/Main_page">&lt;home&gt;</a>`},
		{"uri html keeps link", TypeURI, "HTTP://Example.org/x", "", value.ModeHTML, `<a href="http://example.org/x">HTTP://Example.org/x</a>`},
		{"uri wiki caption", TypeURI, "http://example.org/", "Example", value.ModeWiki, "[http://example.org/ Example]"},
		{"number caption escaped", TypeNumber, "5", "1 < 2", value.ModeHTML, "1 &lt; 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := f.New(tt.typeID)
			require.NoError(t, err)
			v.SetUserValue(tt.text, tt.caption)
			require.True(t, v.IsValid(), v.ErrorText())

			assert.Equal(t, tt.want, v.ShortText(tt.mode))
		})
	}
}

func TestNoCaptionFromKeys(t *testing.T) {
	f := newFactory(t)
	for _, typeID := range []string{TypeText, TypeNumber, TypeURI, TypePage} {
		t.Run(typeID, func(t *testing.T) {
			src := parse(t, f, typeID, map[string]string{
				TypeText:   "hello",
				TypeNumber: "1,000 m",
				TypeURI:    "http://example.org/",
				TypePage:   "main page",
			}[typeID])
			require.True(t, src.IsValid(), src.ErrorText())

			v, err := f.New(typeID)
			require.NoError(t, err)
			v.SetKeys(src.Keys())

			_, ok := v.Caption()
			assert.False(t, ok)
		})
	}
}

func TestTextMaxLength(t *testing.T) {
	f := newFactory(t)
	long := make([]rune, maxTextLength+1)
	for i := range long {
		long[i] = 'x'
	}

	v := parse(t, f, TypeText, string(long))

	assert.False(t, v.IsValid())
	assert.Equal(t, []string{"String representation of 256 characters is too long; at most 255 are allowed."}, v.Errors())
}

func TestServiceLinkParams(t *testing.T) {
	tests := []struct {
		kind value.Kind
		text string
		want []string
	}{
		{&Number{}, "5.5 km/h", []string{"5.5", "km%2Fh"}},
		{&Page{}, "New York", []string{"New%20York"}},
		{&Text{}, "a&b", []string{"a%26b"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			f := value.NewFactory(value.Env{})
			require.NoError(t, f.Register("_k", func() value.Kind { return tt.kind }))
			v, err := f.New("_k")
			require.NoError(t, err)
			v.SetUserValue(tt.text, "")
			require.True(t, v.IsValid())

			params, ok := tt.kind.(value.ServiceLinker).ServiceLinkParams()

			assert.True(t, ok)
			assert.Equal(t, tt.want, params)
		})
	}
}
