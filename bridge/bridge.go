package bridge

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/obiente/translate/speechbridge/internal/audio"
	"github.com/obiente/translate/speechbridge/internal/langid"
	"github.com/obiente/translate/speechbridge/internal/models"
	"github.com/obiente/translate/speechbridge/internal/translation"
	"github.com/obiente/translate/speechbridge/internal/whisper"
)

// EngineFactory builds a speech-recognition engine from a model source.
// modelPath wins over modelName when both are set; modelName may require a
// download on first use.
type EngineFactory func(modelPath, modelName string) (whisper.Engine, error)

// AudioLoader decodes an audio file into a mono PCM32F clip.
type AudioLoader func(path string) (audio.Clip, error)

// Options configures a Bridge. Zero fields get production defaults; tests
// inject fakes.
type Options struct {
	Engines    EngineFactory
	Audio      AudioLoader
	Translator translation.Provider
	Detector   langid.Detector
	ModelsDir  string
	Logger     *zerolog.Logger
}

// Bridge owns the context arena and the injected capabilities. One instance
// serves any number of concurrent calls.
type Bridge struct {
	engines    EngineFactory
	audio      AudioLoader
	translator translation.Provider
	detector   langid.Detector
	log        zerolog.Logger

	mu       sync.Mutex
	next     Handle
	contexts map[Handle]*contextState
}

func New(opts Options) *Bridge {
	b := &Bridge{
		engines:    opts.Engines,
		audio:      opts.Audio,
		translator: opts.Translator,
		detector:   opts.Detector,
		contexts:   make(map[Handle]*contextState),
	}
	if opts.Logger != nil {
		b.log = *opts.Logger
	} else {
		b.log = log.Logger
	}
	if b.engines == nil {
		dir := opts.ModelsDir
		if dir == "" {
			dir = "models"
		}
		mgr := models.NewManager(dir)
		b.engines = func(modelPath, modelName string) (whisper.Engine, error) {
			if modelPath != "" {
				return whisper.NewEngine(modelPath)
			}
			path, err := mgr.Ensure(context.Background(), modelName)
			if err != nil {
				return nil, err
			}
			return whisper.NewEngine(path)
		}
	}
	if b.audio == nil {
		b.audio = audio.DecodeFile
	}
	if b.detector == nil {
		b.detector = langid.NewDetector()
	}
	return b
}
