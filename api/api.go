package api

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/auditdesk/auditdesk"
	"github.com/auditdesk/auditdesk/api/middleware"
	"github.com/auditdesk/auditdesk/config"
)

type Api struct {
	desk   *auditdesk.AuditDesk
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.GET("/dashboard", a.GetDashboard)
	router.GET("/invoices/:id", a.GetInvoice)
	router.POST("/invoices/:id/action", a.SubmitAction)
	router.POST("/invoices/:id/rerun", a.RerunValidation)

	router.POST("/upload", a.UploadInvoice)
	router.GET("/incoming-files", a.GetIncomingFiles)
	router.POST("/process-existing", a.ProcessExisting)
	router.GET("/download/:filename", a.DownloadReport)

	router.GET("/chat", a.GetChat)
	router.POST("/chat", a.PostChat)

	router.GET("/notification", a.GetNotification)
	return a.router
}

func NewAPI(d *auditdesk.AuditDesk) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()
	r.Use(middleware.RateLimitMiddleware(conf))
	r.Use(otelgin.Middleware("auditdesk"))
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{desk: d, router: r}
}
