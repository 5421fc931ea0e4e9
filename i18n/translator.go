package i18n

// Translator retrieves localized messages for report codes. data provides
// optional metadata to embed in the message (for example, "expected" or
// "min").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

// expected-type phrasings for invalid_type messages
var enExpected = map[string]string{
	"string":    "must be a string",
	"integer":   "must be an integer",
	"number":    "must be a number",
	"boolean":   "must be a boolean",
	"uuid":      "must be a UUID",
	"timestamp": "must be a valid timestamp",
}

var jaExpected = map[string]string{
	"string":    "文字列である必要があります",
	"integer":   "整数である必要があります",
	"number":    "数値である必要があります",
	"boolean":   "真偽値である必要があります",
	"uuid":      "UUIDである必要があります",
	"timestamp": "有効なタイムスタンプである必要があります",
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			if m, ok := jaExpected[data["expected"]]; ok {
				return m
			}
			return "型が不正です"
		case "required":
			return "必須フィールドがありません"
		case "unknown_key":
			return "未知のキーです"
		case "invalid_shape":
			return "入力の形を認識できません"
		case "not_blank":
			return "空白にできません"
		case "overflow":
			return "表現できる範囲を超えています"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "too_small":
			if min := data["min"]; min != "" {
				return min + "以上である必要があります"
			}
			return "小さすぎます"
		case "too_big":
			if max := data["max"]; max != "" {
				return max + "以下である必要があります"
			}
			return "大きすぎます"
		case "invalid_enum":
			return "許可された値ではありません"
		case "invalid_format":
			return "形式が不正です"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if m, ok := enExpected[data["expected"]]; ok {
				return m
			}
			return "is invalid"
		case "required":
			return "is missing"
		case "unknown_key":
			return "unknown key"
		case "invalid_shape":
			return "unrecognized input shape"
		case "not_blank":
			return "must not be blank"
		case "overflow":
			return "is out of range"
		case "too_short":
			return "is too short"
		case "too_long":
			return "is too long"
		case "too_small":
			if min := data["min"]; min != "" {
				return "must be at least " + min
			}
			return "is too small"
		case "too_big":
			if max := data["max"]; max != "" {
				return "must be at most " + max
			}
			return "is too big"
		case "invalid_enum":
			return "is not a valid option"
		case "invalid_format":
			return "has an invalid format"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
