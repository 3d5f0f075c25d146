// Package i18n loads the embedded message catalogs and resolves localization
// keys such as "VAGABOND.Roll.Power.Tiers.One" for a locale.
package i18n

import (
	"embed"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/vagabond-api/internal/errors"
)

const (
	// BaseLocale is the canonical source locale for catalogs.
	BaseLocale = "en-US"
)

// Localizer resolves localization keys. Unknown keys resolve to themselves.
type Localizer interface {
	Localize(key string) string
	// Format localizes key and replaces {name} placeholders from args
	Format(key string, args map[string]string) string
}

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale
type Bundle struct {
	messages map[string]map[string]string
	builder  *catalog.Builder
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// DefaultLocalizer localizes with the embedded catalogs in BaseLocale
func DefaultLocalizer() Localizer {
	return defaultBundle.Localizer(BaseLocale)
}

// LoadEmbedded loads the catalogs compiled into the binary
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files from fsys
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "failed to glob locale catalogs")
	}
	if len(paths) == 0 {
		return nil, errors.NotFound("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{
		messages: map[string]map[string]string{},
		builder:  catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
	}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read catalog %s", path)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse catalog %s", path)
		}
		if err := b.addFile(path, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, errors.InvalidArgumentf("base locale %s is not defined in catalogs", BaseLocale)
	}

	return b, nil
}

func (b *Bundle) addFile(path string, file catalogFile) error {
	localeFromPath := filepath.Base(filepath.Dir(path))
	namespaceFromPath := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if file.Locale != localeFromPath {
		return errors.InvalidArgumentf("catalog %s: locale %q must match path locale %q", path, file.Locale, localeFromPath)
	}
	if file.Namespace != namespaceFromPath {
		return errors.InvalidArgumentf("catalog %s: namespace %q must match filename %q", path, file.Namespace, namespaceFromPath)
	}
	if len(file.Messages) == 0 {
		return errors.InvalidArgumentf("catalog %s: messages are required", path)
	}

	tag, err := language.Parse(file.Locale)
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "catalog %s: invalid locale", path)
	}

	messages, ok := b.messages[file.Locale]
	if !ok {
		messages = map[string]string{}
		b.messages[file.Locale] = messages
	}

	for key, value := range file.Messages {
		if _, exists := messages[key]; exists {
			return errors.AlreadyExistsf("catalog %s: duplicate key %q in locale %q", path, key, file.Locale)
		}
		messages[key] = value
		if err := b.builder.SetString(tag, key, value); err != nil {
			return errors.Wrapf(err, "catalog %s: failed to register %q", path, key)
		}
	}

	return nil
}

// Locales returns the loaded locale identifiers
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.messages))
	for locale := range b.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Localizer returns a localizer for the closest loaded locale, falling back
// to BaseLocale when nothing matches.
func (b *Bundle) Localizer(locale string) Localizer {
	supported := []language.Tag{language.MustParse(BaseLocale)}
	for _, l := range b.Locales() {
		if l == BaseLocale {
			continue
		}
		if tag, err := language.Parse(l); err == nil {
			supported = append(supported, tag)
		}
	}

	tag := supported[0]
	if requested, err := language.Parse(locale); err == nil {
		_, index, confidence := language.NewMatcher(supported).Match(requested)
		if confidence != language.No {
			tag = supported[index]
		}
	}

	return &printer{
		bundle:  b,
		printer: message.NewPrinter(tag, message.Catalog(b.builder)),
	}
}

func (b *Bundle) has(key string) bool {
	for _, messages := range b.messages {
		if _, ok := messages[key]; ok {
			return true
		}
	}
	return false
}

type printer struct {
	bundle  *Bundle
	printer *message.Printer
}

func (p *printer) Localize(key string) string {
	if key == "" || !p.bundle.has(key) {
		return key
	}
	return p.printer.Sprintf(key)
}

func (p *printer) Format(key string, args map[string]string) string {
	out := p.Localize(key)
	for name, value := range args {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

func mustLoadEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return bundle
}
