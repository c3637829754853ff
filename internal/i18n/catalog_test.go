package i18n

import (
	"testing"
	"testing/fstest"
)

func TestDefault_LoadsEmbeddedLocales(t *testing.T) {
	names := Default().Locales()
	if len(names) != 2 || names[0] != "en-US" || names[1] != "es-MX" {
		t.Fatalf("Locales() = %v, want [en-US es-MX]", names)
	}
}

func TestLookup_ExactAndMatched(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"es-MX", "es-MX"},
		{"en-US", "en-US"},
		{"en-GB", "en-US"},
		{"fr-FR", "es-MX"},
		{"", "es-MX"},
		{"not a tag!", "es-MX"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := For(tc.in).Locale; got != tc.want {
				t.Fatalf("For(%q).Locale = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMessages_TAndMonth(t *testing.T) {
	m := For("es-MX")
	if got := m.T("card.sources"); got != "Fuentes" {
		t.Fatalf("T(card.sources) = %q, want Fuentes", got)
	}
	if got := m.T("missing.key"); got != "missing.key" {
		t.Fatalf("T(missing.key) = %q, want the key back", got)
	}
	if got := m.Month(1); got != "enero" {
		t.Fatalf("Month(1) = %q, want enero", got)
	}
	if got := m.Month(13); got != "" {
		t.Fatalf("Month(13) = %q, want empty", got)
	}
}

func TestLoadFromFS_RequiresDefaultLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en-US.yaml": {Data: []byte("locale: en-US\nmonths: [a, b, c, d, e, f, g, h, i, j, k, l]\nmessages: {}\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatalf("LoadFromFS returned nil error, want missing default locale")
	}
}

func TestLoadFromFS_RejectsShortMonthList(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/es-MX.yaml": {Data: []byte("locale: es-MX\nmonths: [enero]\nmessages: {}\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatalf("LoadFromFS returned nil error, want month count error")
	}
}
