package model

type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type UpdateTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

// RasterRequest carries a canvas as base64 RGBA bytes, the shape of canvas getImageData.
type RasterRequest struct {
	Width  int    `json:"width" binding:"required,min=1"`
	Height int    `json:"height" binding:"required,min=1"`
	Pixels []byte `json:"pixels" binding:"required"`
}

type CareRequest struct {
	Action string `json:"action" binding:"required"`
}

type FocusRequest struct {
	Lat  float64 `json:"lat" binding:"min=-90,max=90"`
	Lng  float64 `json:"lng" binding:"min=-180,max=180"`
	Name string  `json:"name" binding:"required"`
}

type RenameRequest struct {
	Name string `json:"name"`
}
