// Command cshared builds speechbridge as a C shared library:
//
//	go build -buildmode=c-shared -o libspeechbridge.so ./cshared
//
// The exported surface mirrors the Go bridge one to one. Strings handed to
// host callbacks are freed immediately after the callback returns; hosts
// copy anything they keep. Tokens are opaque host pointers, passed through
// untouched.
package main

/*
#include <stdlib.h>
#include "speechbridge.h"
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/obiente/translate/speechbridge/bridge"
	"github.com/obiente/translate/speechbridge/internal/config"
	"github.com/obiente/translate/speechbridge/internal/translation"
)

var (
	initOnce sync.Once
	shared   *bridge.Bridge
)

func sharedBridge() *bridge.Bridge {
	initOnce.Do(func() {
		cfg := config.Load()
		catalog, err := translation.LoadCatalog(cfg.ResourceDir)
		if err != nil {
			catalog = nil
		}
		shared = bridge.New(bridge.Options{
			ModelsDir: cfg.ModelsDir,
			Translator: &translation.HTTPProvider{
				Client:  translation.NewClient(cfg.TranslationBaseURL, cfg.TranslationTimeoutSec),
				Catalog: catalog,
			},
		})
	})
	return shared
}

// goString copies an optional C string; nil maps to the empty string.
func goString(p *C.char) string {
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

//export speechbridge_create_context
func speechbridge_create_context(modelPath, modelName, language *C.char) C.int64_t {
	h := sharedBridge().CreateContext(goString(modelPath), goString(modelName), goString(language))
	return C.int64_t(h)
}

//export speechbridge_release_context
func speechbridge_release_context(h C.int64_t) {
	sharedBridge().ReleaseContext(bridge.Handle(h))
}

//export speechbridge_transcribe
func speechbridge_transcribe(h C.int64_t, audioPath *C.char, cb C.speechbridge_result_cb, pcb C.speechbridge_progress_cb, token unsafe.Pointer) {
	onResult := func(text, errText *string, start, end float64, tok any) {
		var cText, cErr *C.char
		if text != nil {
			cText = C.CString(*text)
		}
		if errText != nil {
			cErr = C.CString(*errText)
		}
		C.speechbridge_invoke_result(cb, cText, cErr, C.double(start), C.double(end), tok.(unsafe.Pointer))
		if cText != nil {
			C.free(unsafe.Pointer(cText))
		}
		if cErr != nil {
			C.free(unsafe.Pointer(cErr))
		}
	}
	var onProgress bridge.ProgressCallback
	if pcb != nil {
		onProgress = func(percent float64, tok any) {
			C.speechbridge_invoke_progress(pcb, C.double(percent), tok.(unsafe.Pointer))
		}
	}
	sharedBridge().Transcribe(bridge.Handle(h), goString(audioPath), onResult, onProgress, token)
}

//export speechbridge_translate
func speechbridge_translate(text, sourceLang, targetLang *C.char, token unsafe.Pointer, cb C.speechbridge_translate_cb) {
	onResult := func(tok any, translated, errText *string) {
		var cText, cErr *C.char
		if translated != nil {
			cText = C.CString(*translated)
		}
		if errText != nil {
			cErr = C.CString(*errText)
		}
		C.speechbridge_invoke_translate(cb, tok.(unsafe.Pointer), cText, cErr)
		if cText != nil {
			C.free(unsafe.Pointer(cText))
		}
		if cErr != nil {
			C.free(unsafe.Pointer(cErr))
		}
	}
	sharedBridge().Translate(goString(text), goString(sourceLang), goString(targetLang), token, onResult)
}

func main() {}
