package cmd

import (
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
	"github.com/spf13/viper"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/client"
)

// Variables to hold flag values
var (
	expAPIKey     string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	api    *client.DashboardClient
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	registry := prometheus.NewRegistry()
	collector := &MerakiCollector{Client: p.api}
	registry.MustRegister(collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("Meraki MV exporter listening on %s", addr)

	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	if p.server != nil {
		if err := p.server.Close(); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COLLECTOR LOGIC ---

type MerakiCollector struct {
	Client *client.DashboardClient
	Mutex  sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"meraki_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"meraki_scrape_duration_seconds", "Time taken to scrape the dashboard API.", nil, nil,
	)
	orgCountDesc = prometheus.NewDesc(
		"meraki_organizations_total", "Number of organizations visible to the API key.", nil, nil,
	)
	cameraCountDesc = prometheus.NewDesc(
		"meraki_cameras_total", "Camera devices per organization.", []string{"org_id", "org_name"}, nil,
	)
	cameraModelDesc = prometheus.NewDesc(
		"meraki_cameras_by_model", "Camera devices grouped by model.", []string{"org_id", "model"}, nil,
	)
)

func (c *MerakiCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- orgCountDesc
	ch <- cameraCountDesc
	ch <- cameraModelDesc
}

func (c *MerakiCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	start := time.Now()
	success := 1.0

	orgs, err := c.Client.GetOrganizations()
	if err != nil {
		log.Printf("Error scraping organizations: %v", err)
		ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 0.0)
		ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
		return
	}
	ch <- prometheus.MustNewConstMetric(orgCountDesc, prometheus.GaugeValue, float64(len(orgs)))

	for _, org := range orgs {
		cams, err := c.Client.GetOrganizationDevices(org.ID)
		if err != nil {
			success = 0.0
			log.Printf("Error scraping cameras for org %s: %v", org.ID, err)
			continue
		}

		ch <- prometheus.MustNewConstMetric(cameraCountDesc, prometheus.GaugeValue, float64(len(cams)), org.ID, org.Name)

		modelCounts := make(map[string]float64)
		for _, cam := range cams {
			model := strings.ToUpper(cam.Model)
			if model == "" {
				model = "UNKNOWN"
			}
			modelCounts[model]++
		}
		for model, cnt := range modelCounts {
			ch <- prometheus.MustNewConstMetric(cameraModelDesc, prometheus.GaugeValue, cnt, org.ID, model)
		}
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus exporter service",
	Long: `Starts a long-running HTTP server that exposes Meraki fleet metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		key := expAPIKey
		if key == "" {
			key = viper.GetString("api_key")
		}
		if key == "" {
			log.Fatal("Error: You must provide an API key (--apikey or MERAKI_DASHBOARD_API_KEY).")
		}

		svcConfig := &service.Config{
			Name:        "meraki-mv-exporter",
			DisplayName: "Meraki MV Prometheus Exporter",
			Description: "Exposes Meraki camera fleet metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--apikey", key,
				"--port", expPort,
			},
		}

		prg := &program{
			api: client.New(client.ClientConfig{APIKey: key}),
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// Handle service control actions (install, start, stop, uninstall)
		if serviceAction != "" {
			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// Run the service (blocking). This happens when the service manager
		// starts the binary, or when run interactively.
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)

	exporterCmd.Flags().StringVar(&expAPIKey, "apikey", "", "Meraki dashboard API key")
	exporterCmd.Flags().StringVar(&expPort, "port", "9100", "Port to listen on")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
