package translator

import (
	"embed"
	"io/fs"
	"os"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

//go:embed translation/*.toml
var embedded embed.FS

type Config struct {
	// TranslationFolder overrides the embedded message files when set.
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	var (
		fsys fs.FS
		dir  string
	)
	if cfg.TranslationFolder != "" {
		fsys, dir = os.DirFS(cfg.TranslationFolder), "."
	} else {
		fsys, dir = embedded, "translation"
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range entries {
		if f.IsDir() || path.Ext(f.Name()) != ".toml" {
			continue
		}
		if _, err := Translator.LoadMessageFileFS(fsys, path.Join(dir, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// Translate localizes msgKey for lang, falling back to English and then to
// the key itself.
func Translate(msgKey string, lang string) string {
	if Translator == nil {
		return msgKey
	}
	l := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}

// Supported reports whether lang matches one of the configured languages.
func Supported(lang string, supported []string) (string, bool) {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil {
		return LanguageEn, false
	}
	for _, t := range tags {
		base, _ := t.Base()
		for _, s := range supported {
			if base.String() == s {
				return s, true
			}
		}
	}
	return LanguageEn, false
}
