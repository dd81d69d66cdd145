package types

type ImageAnalysisResponse struct {
	Analysis       string `json:"analysis"`
	QuestionAsked  string `json:"question_asked"`
	ImageProcessed bool   `json:"image_processed"`
}
