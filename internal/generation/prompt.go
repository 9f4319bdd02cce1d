package generation

import (
	"fmt"
	"strings"
)

// Audience identifies the study track a flashcard request targets. The set
// is closed; anything the lookup does not recognize falls back to
// AudienceGeneric.
type Audience string

const (
	// AudienceYKS is the pre-university exam-prep track.
	AudienceYKS Audience = "yks"

	// AudienceLGS is the middle-school-level exam-prep track.
	AudienceLGS Audience = "lgs"

	// AudiencePreclinical targets medical students in the pre-clinical years.
	AudiencePreclinical Audience = "preklinik"

	// AudienceClinical targets medical students in the clinical years.
	AudienceClinical Audience = "klinik"

	// AudienceTUS is the Turkish medical specialty licensing-exam track.
	AudienceTUS Audience = "tus"

	// AudienceUSMLE is the United States medical licensing-exam track.
	AudienceUSMLE Audience = "usmle"

	// AudienceGeneric is the fallback for unrecognized subjects.
	AudienceGeneric Audience = "generic"
)

// audienceIntros maps each audience to its register/tone instruction. The
// two %-verbs are (count, topic) in that order.
var audienceIntros = map[Audience]string{
	AudienceYKS: "YKS'ye hazırlanan bir lise öğrencisi için \"%[2]s\" konusunda %[1]d adet flashcard hazırla. " +
		"Soruları YKS müfredatına ve soru tarzına uygun, net ve sınav odaklı yaz. " +
		"Cevaplar kısa, akılda kalıcı olsun ve gerektiğinde çözümlü bir örnek içersin.",
	AudienceLGS: "LGS'ye hazırlanan bir ortaokul öğrencisi için \"%[2]s\" konusunda %[1]d adet flashcard hazırla. " +
		"Yaş grubuna uygun sade bir dil kullan, ağır terimlerden kaçın ve her cevabı günlük hayattan bir örnekle destekle.",
	AudiencePreclinical: "Preklinik dönemdeki bir tıp öğrencisi için \"%[2]s\" konusunda %[1]d adet flashcard hazırla. " +
		"Temel bilimler düzeyinde (anatomi, fizyoloji, biyokimya) akademik bir dil kullan; " +
		"mekanizmaları ve kavramlar arası ilişkileri vurgula.",
	AudienceClinical: "Klinik dönemdeki bir tıp öğrencisi için \"%[2]s\" konusunda %[1]d adet flashcard hazırla. " +
		"Vaka temelli düşünmeyi teşvik et; tanı, ayırıcı tanı ve tedavi yaklaşımlarını klinik terminolojiyle işle.",
	AudienceTUS: "TUS'a hazırlanan bir hekim için \"%[2]s\" konusunda %[1]d adet flashcard hazırla. " +
		"TUS'ta çıkmış soru tarzını gözet, yüksek verimli (high-yield) bilgilere ve sık sorulan ayrıntılara odaklan. " +
		"Tıbbi terminolojiyi tam ve doğru kullan.",
	AudienceUSMLE: "Prepare %[1]d flashcards on \"%[2]s\" for a medical graduate studying for the USMLE. " +
		"Use precise clinical English, focus on high-yield facts and classic exam presentations, " +
		"and include a brief clinical vignette where it helps recall.",
}

// genericIntro is used when the subject is outside the known audience set.
// Unlike the table entries it names the subject verbatim. Verbs are
// (count, subject, topic).
const genericIntro = "\"%[2]s\" alanında \"%[3]s\" konusunda %[1]d adet flashcard hazırla. " +
	"Konuyu öğrenmeye çalışan bir öğrenciye uygun, açık ve anlaşılır bir dil kullan."

// promptSuffix pins the required output shape. Verbs are
// (count, topic, subject).
const promptSuffix = "\n\nYanıtını SADECE geçerli bir JSON dizisi olarak ver, başka hiçbir metin ekleme. " +
	"Dizi tam olarak %[1]d eleman içermeli ve her eleman şu alanlara sahip olmalı:\n" +
	`[{"question": "soru metni", "answer": "cevap metni", "category": "%[2]s", ` +
	`"difficulty": "easy" | "medium" | "hard", "subject": "%[3]s"}]`

// AudienceFor normalizes a request subject onto the closed audience set,
// case-insensitively. Unknown subjects map to AudienceGeneric.
func AudienceFor(subject string) Audience {
	switch Audience(strings.ToLower(strings.TrimSpace(subject))) {
	case AudienceYKS:
		return AudienceYKS
	case AudienceLGS:
		return AudienceLGS
	case AudiencePreclinical:
		return AudiencePreclinical
	case AudienceClinical:
		return AudienceClinical
	case AudienceTUS:
		return AudienceTUS
	case AudienceUSMLE:
		return AudienceUSMLE
	}
	return AudienceGeneric
}

// BuildPrompt maps (subject, topic, count) to the natural-language
// instruction sent to the completion service. Pure and deterministic: every
// branch ends with the shared structural suffix describing the JSON shape.
func BuildPrompt(subject, topic string, count int) string {
	var intro string
	if tmpl, ok := audienceIntros[AudienceFor(subject)]; ok {
		intro = fmt.Sprintf(tmpl, count, topic)
	} else {
		intro = fmt.Sprintf(genericIntro, count, subject, topic)
	}
	return intro + fmt.Sprintf(promptSuffix, count, topic, subject)
}
