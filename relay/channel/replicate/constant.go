package replicate

const (
	ModelGoogleImagen = "google-imagen"
	ModelIdeogram     = "ideogram"
)

// ModelList is ordered; the first entry is the default model.
var ModelList = []string{
	ModelGoogleImagen,
	ModelIdeogram,
}

// ModelVersions maps a model selector to the Replicate owner/name.
var ModelVersions = map[string]string{
	ModelGoogleImagen: "google/imagen-3",
	ModelIdeogram:     "ideogram-ai/ideogram-v2a",
}

const (
	PredictionStatusStarting   = "starting"
	PredictionStatusProcessing = "processing"
	PredictionStatusSucceeded  = "succeeded"
	PredictionStatusFailed     = "failed"
	PredictionStatusCanceled   = "canceled"
)
