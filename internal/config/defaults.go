package config

import "github.com/bdbt/tipsearch/internal/search"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "./data/tipsearch.db"
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 50
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 200
	}
	if cfg.Search.SuggestionLimit == 0 {
		cfg.Search.SuggestionLimit = 10
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 400
	}

	if cfg.Scoring == nil {
		w := search.DefaultWeights()
		cfg.Scoring = &w
	} else {
		applyWeightDefaults(cfg.Scoring)
	}
}

// applyWeightDefaults fills unset scoring weights with the standard values,
// so a partial scoring section overrides only what it names.
func applyWeightDefaults(w *search.Weights) {
	d := search.DefaultWeights()
	if w.Coverage == 0 {
		w.Coverage = d.Coverage
	}
	if w.Title == 0 {
		w.Title = d.Title
	}
	if w.Subtitle == 0 {
		w.Subtitle = d.Subtitle
	}
	if w.Tag == 0 {
		w.Tag = d.Tag
	}
	if w.Description == 0 {
		w.Description = d.Description
	}
	if w.Benefit == 0 {
		w.Benefit = d.Benefit
	}
	if w.ExactPhrase == 0 {
		w.ExactPhrase = d.ExactPhrase
	}
	if w.PopularViews == 0 {
		w.PopularViews = d.PopularViews
	}
	if w.HighRating == 0 {
		w.HighRating = d.HighRating
	}
	if w.Featured == 0 {
		w.Featured = d.Featured
	}
	if w.Recency == 0 {
		w.Recency = d.Recency
	}
}
