package ginx

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterMetrics 挂载 prometheus 拉取接口
func RegisterMetrics(server *gin.Engine, path string, gatherer prometheus.Gatherer) {
	if path == "" {
		path = "/metrics"
	}
	server.GET(path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
