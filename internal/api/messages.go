package api

// User-visible error messages per error class and locale. Internals (stack
// traces, tag names, stage identifiers) never reach the viewer; the catalog
// is the only source of user-facing failure text.

var userMessages = map[string]map[string]string{
	"input_quality": {
		"en": "We couldn't read that image or text clearly. Please retake the photo in good light and try again.",
		"zh": "图片或文字无法清晰识别，请在光线充足处重新拍摄后再试。",
	},
	"generation_failure": {
		"en": "The reading service is temporarily unavailable. Please try again in a little while.",
		"zh": "解读服务暂时不可用，请稍后再试。",
	},
	"persistence_failure": {
		"en": "Your reading was produced but could not be saved. Please try again.",
		"zh": "报告已生成但保存失败，请重试。",
	},
	"not_found": {
		"en": "This reading could not be found.",
		"zh": "未找到该报告。",
	},
	"invalid_request": {
		"en": "The request could not be understood.",
		"zh": "请求格式不正确。",
	},
}

// userMessage resolves a class and locale to display text, falling back to
// English for unknown locales.
func userMessage(class, locale string) string {
	msgs, ok := userMessages[class]
	if !ok {
		return userMessages["invalid_request"]["en"]
	}
	if m, ok := msgs[normalizeLocale(locale)]; ok {
		return m
	}
	return msgs["en"]
}

func normalizeLocale(locale string) string {
	if len(locale) >= 2 && locale[:2] == "zh" {
		return "zh"
	}
	return "en"
}
