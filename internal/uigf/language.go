package uigf

import (
	"strings"

	"golang.org/x/text/language"
)

// LanguageCode is a client language accepted by the interchange format.
type LanguageCode int

const (
	LangDeDE LanguageCode = iota + 1
	LangEnUS
	LangEsES
	LangFrFR
	LangIdID
	LangItIT
	LangJaJP
	LangKoKR
	LangPtPT
	LangRuRU
	LangThTH
	LangTrTR
	LangViVN
	LangZhCN
	LangZhTW
)

var languageCodes = newCatalog("lang",
	entry[LanguageCode]{LangDeDE, "de-de"},
	entry[LanguageCode]{LangEnUS, "en-us"},
	entry[LanguageCode]{LangEsES, "es-es"},
	entry[LanguageCode]{LangFrFR, "fr-fr"},
	entry[LanguageCode]{LangIdID, "id-id"},
	entry[LanguageCode]{LangItIT, "it-it"},
	entry[LanguageCode]{LangJaJP, "ja-jp"},
	entry[LanguageCode]{LangKoKR, "ko-kr"},
	entry[LanguageCode]{LangPtPT, "pt-pt"},
	entry[LanguageCode]{LangRuRU, "ru-ru"},
	entry[LanguageCode]{LangThTH, "th-th"},
	entry[LanguageCode]{LangTrTR, "tr-tr"},
	entry[LanguageCode]{LangViVN, "vi-vn"},
	entry[LanguageCode]{LangZhCN, "zh-cn"},
	entry[LanguageCode]{LangZhTW, "zh-tw"},
)

// ParseLanguage maps a client language string to a LanguageCode.
// Case and separator variants ("zh-CN", "zh_cn") are accepted.
func ParseLanguage(s string) (LanguageCode, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	if v, ok := languageCodes.parse(s); ok {
		return v, true
	}
	tag, err := language.Parse(s)
	if err != nil {
		return 0, false
	}
	return languageCodes.parse(strings.ToLower(tag.String()))
}

// Tag returns the BCP 47 tag for the language.
func (l LanguageCode) Tag() language.Tag {
	return language.Make(l.String())
}

func (l LanguageCode) String() string { return languageCodes.code(l) }

func (l LanguageCode) MarshalJSON() ([]byte, error) { return languageCodes.marshal(l) }

func (l *LanguageCode) UnmarshalJSON(data []byte) error {
	v, err := languageCodes.unmarshal(data)
	if err != nil {
		return err
	}
	*l = v
	return nil
}
