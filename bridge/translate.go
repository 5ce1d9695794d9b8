package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/obiente/translate/speechbridge/internal/translation"
)

// Fixed messages crossing the boundary. Callers may match these literally;
// every other error passes through as native text.
const (
	// MsgLanguageUndetermined is delivered synchronously when no source
	// language was given and none could be identified from the text.
	MsgLanguageUndetermined = "Unable to determine the source language. Specify a source language and try again."

	// MsgResourceMissing replaces any failure caused by an uninstalled
	// translation language resource.
	MsgResourceMissing = "Translation language not installed. Download it under System Settings > General > Language & Region > Translation Languages, then try again."
)

// Translate schedules translation of text into targetLang and returns
// immediately, with one exception: when sourceLang is empty and no dominant
// language can be identified, the terminal callback fires synchronously on
// the calling goroutine with MsgLanguageUndetermined and no asynchronous
// work is scheduled. Every invocation delivers exactly one terminal call:
// (token, translated, nil) or (token, nil, message).
func (b *Bridge) Translate(text, sourceLang, targetLang string, token any, onResult TranslateCallback) {
	source := strings.TrimSpace(sourceLang)
	if source == "" {
		detected, err := b.detector.Detect(text)
		if err != nil {
			msg := MsgLanguageUndetermined
			onResult(token, nil, &msg)
			return
		}
		source = detected
		b.log.Debug().Str("language", source).Msg("bridge: source language detected")
	}

	go func() {
		var (
			translated string
			err        error
		)
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("translate: panic: %v", r)
				b.log.Error().Msgf("bridge: translation unit panicked: %v", r)
			}
			if err != nil {
				msg := err.Error()
				if errors.Is(err, translation.ErrResourceMissing) {
					msg = MsgResourceMissing
				}
				onResult(token, nil, &msg)
				return
			}
			onResult(token, &translated, nil)
		}()
		translated, err = b.runTranslate(source, targetLang, text)
	}()
}

func (b *Bridge) runTranslate(source, target, text string) (string, error) {
	if b.translator == nil {
		return "", fmt.Errorf("translation: no provider configured")
	}
	ctx := context.Background()
	session := b.translator.NewSession(source, target)
	if err := session.Prepare(ctx); err != nil {
		return "", err
	}
	return session.Translate(ctx, text)
}
