package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// healthz handles GET /healthz
// @Summary      Report harness readiness
// @Description  Returns 200 if a coordinator session is attached, 503 otherwise
// @Tags         harness
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /healthz [get]
func (r *Router) healthz(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK
	if r.session == nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, HealthResponse{Status: status, Timestamp: time.Now()})
}

// listClusters handles GET /schema/clusters
// @Summary      List loaded clusters
// @Description  Returns every loaded ZCL cluster's name, code, and define
// @Tags         schema
// @Produce      json
// @Success      200  {array}  ClusterSummary
// @Router       /schema/clusters [get]
func (r *Router) listClusters(c *gin.Context) {
	out := make([]ClusterSummary, 0, len(r.schema.Clusters))
	for _, cluster := range r.schema.Clusters {
		out = append(out, ClusterSummary{Name: cluster.Name, Code: cluster.Code, Define: cluster.Define})
	}
	c.JSON(http.StatusOK, out)
}

// getCluster handles GET /schema/clusters/:name
// @Summary      Describe a cluster
// @Description  Returns a cluster's commands and attributes by normalised name
// @Tags         schema
// @Produce      json
// @Param        name  path      string  true  "Cluster name"
// @Success      200   {object}  ClusterDetail
// @Failure      404   {object}  map[string]string  "Unknown cluster"
// @Router       /schema/clusters/{name} [get]
func (r *Router) getCluster(c *gin.Context) {
	name := c.Param("name")
	cluster, ok := r.schema.Cluster(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown cluster: " + name})
		return
	}

	detail := ClusterDetail{
		ClusterSummary: ClusterSummary{Name: cluster.Name, Code: cluster.Code, Define: cluster.Define},
	}
	for _, cmd := range cluster.Commands {
		params := make([]ParamEntry, len(cmd.Params))
		for i, p := range cmd.Params {
			params[i] = ParamEntry{Name: p.Name, Type: string(p.Type)}
		}
		detail.Commands = append(detail.Commands, CommandSummary{Name: cmd.Name, Code: cmd.Code, Params: params})
	}
	for _, attr := range cluster.Attributes {
		detail.Attributes = append(detail.Attributes, AttributeSummary{Name: attr.Name, Code: attr.Code, Type: string(attr.Type)})
	}

	c.JSON(http.StatusOK, detail)
}

// getState handles GET /state
// @Summary      Report controller and persisted harness state
// @Description  Returns the controller's last-observed network state and any persisted harness configuration
// @Tags         harness
// @Produce      json
// @Success      200  {object}  StateResponse
// @Router       /state [get]
func (r *Router) getState(c *gin.Context) {
	resp := StateResponse{}

	if r.session != nil {
		resp.ControllerState = &ControllerStateView{
			Sequence:     r.session.Sequence(),
			NetworkState: r.session.State().String(),
		}
	}

	if r.store != nil {
		cfg, err := r.store.Load(c.Request.Context())
		if err == nil {
			resp.ControllerAddr = cfg.ControllerAddr
			resp.DUTNodeID = cfg.DUTNodeID
			resp.DUTIEEEAddress = cfg.DUTIEEEAddress
			resp.PersistedConfigSet = true
		}
	}

	c.JSON(http.StatusOK, resp)
}
