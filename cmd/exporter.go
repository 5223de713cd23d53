package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"uvc-cli/internal/client"
	"uvc-cli/pkg/models"
)

// Variables to hold flag values
var (
	expHost       string
	expPort       int
	expAPIKey     string
	expTLS        bool
	expListen     string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	cfg    client.Config
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	log.Println("Bootstrapping NVR session...")
	api, err := client.New(p.cfg)
	if err != nil {
		// Exit so the service manager attempts a restart.
		log.Fatalf("Fatal: NVR bootstrap failed: %v", err)
	}
	log.Printf("Connected to NVR version %s.", api.ServerVersion())

	registry := prometheus.NewRegistry()
	registry.MustRegister(&UVCCollector{Client: api})

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	p.server = &http.Server{
		Addr:    expListen,
		Handler: mux,
	}

	log.Printf("UVC Exporter listening on %s", expListen)
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COLLECTOR ---

type UVCCollector struct {
	Client *client.Client
	Mutex  sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"uvc_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"uvc_scrape_duration_seconds", "Time taken to scrape the NVR API.", nil, nil,
	)
	cameraUpDesc = prometheus.NewDesc(
		"uvc_camera_up", "Camera connection status.", []string{"id", "name"}, nil,
	)
	cameraManagedDesc = prometheus.NewDesc(
		"uvc_camera_managed", "Whether the camera is managed by the NVR.", []string{"id", "name"}, nil,
	)
	cameraRecordingDesc = prometheus.NewDesc(
		"uvc_camera_recording", "Active recording mode per camera.", []string{"id", "name", "mode"}, nil,
	)
	cameraCountDesc = prometheus.NewDesc(
		"uvc_cameras_total", "Total cameras grouped by state.", []string{"state"}, nil,
	)
	alertsCountDesc = prometheus.NewDesc(
		"uvc_alerts_total", "Total alerts grouped by state.", []string{"state"}, nil,
	)
)

func (c *UVCCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- cameraUpDesc
	ch <- cameraManagedDesc
	ch <- cameraRecordingDesc
	ch <- cameraCountDesc
	ch <- alertsCountDesc
}

func (c *UVCCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	start := time.Now()
	success := 1.0

	key := c.Client.CameraIdentifierKey()
	if cams, err := c.Client.Index(); err == nil {
		stateCounts := make(map[string]float64)
		for _, cam := range cams {
			isUp := 0.0
			if cam.State == "CONNECTED" {
				isUp = 1.0
			}
			ch <- prometheus.MustNewConstMetric(cameraUpDesc, prometheus.GaugeValue, isUp, cam.ID, cam.Name)

			managed := 0.0
			if cam.Managed {
				managed = 1.0
			}
			ch <- prometheus.MustNewConstMetric(cameraManagedDesc, prometheus.GaugeValue, managed, cam.ID, cam.Name)

			ident := cam.ID
			if key == "uuid" {
				ident = cam.UUID
			}
			if mode, err := c.Client.GetField(ident, "recordmode"); err == nil {
				ch <- prometheus.MustNewConstMetric(cameraRecordingDesc, prometheus.GaugeValue, 1, cam.ID, cam.Name, mode)
			}

			st := strings.ToUpper(cam.State)
			if st == "" {
				st = "UNKNOWN"
			}
			stateCounts[st]++
		}
		for st, cnt := range stateCounts {
			ch <- prometheus.MustNewConstMetric(cameraCountDesc, prometheus.GaugeValue, cnt, st)
		}
	} else {
		success = 0.0
		log.Printf("Error scraping cameras: %v", err)
	}

	if alerts, err := c.Client.ListAlerts(); err == nil {
		alertStates := make(map[string]float64)
		for _, raw := range alerts {
			st := strings.ToUpper(models.AlertFromMap(raw).State)
			if st == "" {
				st = "UNKNOWN"
			}
			alertStates[st]++
		}
		for st, cnt := range alertStates {
			ch <- prometheus.MustNewConstMetric(alertsCountDesc, prometheus.GaugeValue, cnt, st)
		}
	} else {
		success = 0.0
		log.Printf("Error scraping alerts: %v", err)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes UVC NVR metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := client.Config{
			Host:   expHost,
			Port:   expPort,
			APIKey: expAPIKey,
			TLS:    expTLS,
		}

		svcConfig := &service.Config{
			Name:        "uvc-exporter",
			DisplayName: "UVC Prometheus Exporter",
			Description: "Exposes UniFi Video NVR metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--host", expHost,
				"--port", fmt.Sprintf("%d", expPort),
				"--apikey", expAPIKey,
				"--listen", expListen,
			},
		}
		if expTLS {
			svcConfig.Arguments = append(svcConfig.Arguments, "--tls")
		}

		prg := &program{cfg: cfg}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		if serviceAction != "" {
			if serviceAction == "install" && (expHost == "" || expAPIKey == "") {
				log.Fatal("Error: --host and --apikey are required to install the service.")
			}
			if err := service.Control(s, serviceAction); err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// Run blocking; this is the path the service manager takes, and
		// also interactive use.
		svcLogger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err := s.Run(); err != nil {
			svcLogger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)

	exporterCmd.Flags().StringVar(&expHost, "host", "", "NVR hostname")
	exporterCmd.Flags().IntVar(&expPort, "port", 7080, "NVR port")
	exporterCmd.Flags().StringVar(&expAPIKey, "apikey", "", "NVR API key")
	exporterCmd.Flags().BoolVar(&expTLS, "tls", false, "Connect to the NVR over TLS")
	exporterCmd.Flags().StringVar(&expListen, "listen", ":9751", "Exporter listen address")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
	_ = exporterCmd.MarkFlagRequired("host")
	_ = exporterCmd.MarkFlagRequired("apikey")
}
