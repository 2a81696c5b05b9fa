// Package config builds the ghostroot settings object. Defaults live in
// cmd/root.go's viper initialization; Load resolves everything once at
// startup so components receive explicit settings instead of reading
// process-wide state.
package config

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Transport selects how generation requests reach the model.
type Transport string

const (
	TransportHTTP    Transport = "http"
	TransportProcess Transport = "process"
)

// Settings is the single configuration object passed to each component.
type Settings struct {
	DataDir         string
	ArtifactsPath   string
	QuestionsPath   string
	ResearchLogPath string

	Transport       Transport
	OllamaURL       string
	OllamaBin       string
	SpeakerModel    string
	ResearcherModel string

	SpeakerTimeout    time.Duration
	ResearcherTimeout time.Duration

	Language           string
	MaxSpeakerWords    int
	MaxHypotheses      int
	ReviewAllQuestions bool
}

// Load resolves settings from viper (config file, environment, defaults).
func Load() Settings {
	dataDir := viper.GetString("data.dir")
	return Settings{
		DataDir:         dataDir,
		ArtifactsPath:   filepath.Join(dataDir, "artifacts.json"),
		QuestionsPath:   filepath.Join(dataDir, "research_questions.json"),
		ResearchLogPath: filepath.Join(dataDir, "research_log.json"),

		Transport:       Transport(viper.GetString("generation.transport")),
		OllamaURL:       viper.GetString("generation.ollama_url"),
		OllamaBin:       viper.GetString("generation.ollama_bin"),
		SpeakerModel:    viper.GetString("generation.speaker_model"),
		ResearcherModel: viper.GetString("generation.researcher_model"),

		SpeakerTimeout:    viper.GetDuration("generation.speaker_timeout"),
		ResearcherTimeout: viper.GetDuration("generation.researcher_timeout"),

		Language:           viper.GetString("speaker.language"),
		MaxSpeakerWords:    viper.GetInt("speaker.max_words"),
		MaxHypotheses:      viper.GetInt("analysis.max_hypotheses"),
		ReviewAllQuestions: viper.GetBool("analysis.review_all_questions"),
	}
}
