package transcode

import "github.com/labstack/echo/v4"

type Handlers interface {
	EnqueueJob() echo.HandlerFunc
	GetPresignUpload() echo.HandlerFunc
	GetMetrics() echo.HandlerFunc
	ForcePlaySync() echo.HandlerFunc
}
