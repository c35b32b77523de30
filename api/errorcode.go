package api

import "github.com/bitmark-inc/autonomy-forecast/store"

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1400: store.ErrNoFeatureData.Error(),
		1401: store.ErrNoForecast.Error(),
		1402: store.ErrBindingNotFound.Error(),
		1403: "fail to schedule forecast",
	}

	errorInternalServer = errorJSON(999)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorUnknownCountry   = errorJSON(1400)
	errorForecastNotFound = errorJSON(1401)
	errorBindingNotFound  = errorJSON(1402)
	errorScheduleForecast = errorJSON(1403)
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
