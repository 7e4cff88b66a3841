package api

import "github.com/aerovital/navigator-api/store"

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: store.ErrProfileExists.Error(),
		1101: store.ErrProfileNotFound.Error(),

		1200: "no atmospheric reading available yet",
		1201: "air-quality providers unavailable",

		1300: "document analysis failed",
	}

	errorInternalServer = errorJSON(999)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorProfileTaken    = errorJSON(1100)
	errorProfileNotFound = errorJSON(1101)

	errorNoReading           = errorJSON(1200)
	errorProviderUnavailable = errorJSON(1201)

	errorDocumentAnalysis = errorJSON(1300)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
