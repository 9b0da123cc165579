package models

// DashboardStats is the backend's aggregate view of the library and model.
type DashboardStats struct {
	SongsCount       int     `json:"songs_count"`
	GeneratedCount   int     `json:"generated_count"`
	IsTraining       bool    `json:"is_training"`
	ModelAccuracy    float64 `json:"model_accuracy"`
	TotalSizeMB      float64 `json:"total_size_mb"`
	TrainingSessions int     `json:"training_sessions"`
}
