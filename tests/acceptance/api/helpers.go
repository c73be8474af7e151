package api_test

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/valyala/fasthttp"
	"gopkg.in/yaml.v3"

	"github.com/sitegauge/engine/internal/common/configtypes"
)

const (
	apiListen     = ":18080"
	metricsListen = ":19090"
	baseURL       = "http://localhost" + apiListen
	metricsURL    = "http://localhost" + metricsListen
)

// prepareTestConfig writes a service config into a temp dir and returns its path.
func prepareTestConfig() string {
	cfg := configtypes.Config{}
	cfg.Server.Listen = apiListen
	cfg.Server.ReadTimeoutSec = 10
	cfg.Server.WriteTimeoutSec = 10
	cfg.Fetch.PerSourceTimeoutSec = 5
	cfg.Fetch.AllowPrivateHosts = true
	cfg.Metrics.Enabled = true
	cfg.Metrics.Listen = metricsListen
	cfg.Metrics.Path = "/metrics"
	cfg.Log.Level = "warn"
	cfg.Log.Console.Enabled = true
	cfg.Log.Console.Format = "console"

	dir, err := os.MkdirTemp("", "sitegauge_api_test_")
	Expect(err).ToNot(HaveOccurred())

	data, err := yaml.Marshal(&cfg)
	Expect(err).ToNot(HaveOccurred())

	configPath := filepath.Join(dir, "analyzer-service.yaml")
	Expect(os.WriteFile(configPath, data, 0o644)).To(Succeed())

	return configPath
}

// startService launches the analyzer-service binary and waits for /health.
func startService(configPath string) *exec.Cmd {
	cmd := exec.Command("../../../bin/analyzer-service", "-c", configPath)
	cmd.Stdout = GinkgoWriter
	cmd.Stderr = GinkgoWriter
	Expect(cmd.Start()).To(Succeed())

	Eventually(func() error {
		status, _, err := doGET("/health")
		if err != nil {
			return err
		}
		if status != fasthttp.StatusOK {
			return fmt.Errorf("health returned %d", status)
		}
		return nil
	}, 10*time.Second, 200*time.Millisecond).Should(Succeed(), "Service did not become healthy")

	return cmd
}

func stopService(cmd *exec.Cmd) {
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	}
}

func doGET(path string) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(baseURL + path)
	req.Header.SetMethod("GET")
	req.Header.SetConnectionClose()

	client := &fasthttp.Client{MaxIdleConnDuration: 0}
	if err := client.Do(req, resp); err != nil {
		return 0, nil, err
	}
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return resp.StatusCode(), body, nil
}

func doPOST(path string, payload interface{}) (int, []byte, string) {
	body, err := json.Marshal(payload)
	Expect(err).ToNot(HaveOccurred())

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(baseURL + path)
	req.Header.SetMethod("POST")
	req.Header.SetContentType("application/json")
	req.Header.SetConnectionClose()
	req.SetBody(body)

	client := &fasthttp.Client{MaxIdleConnDuration: 0}
	Expect(client.Do(req, resp)).To(Succeed())

	respBody := make([]byte, len(resp.Body()))
	copy(respBody, resp.Body())
	return resp.StatusCode(), respBody, string(resp.Header.Peek("X-Request-ID"))
}

// envelope is the unified API response format.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// outcome mirrors the analysis result shape.
type outcome struct {
	Score       int    `json:"score"`
	Tier        string `json:"tier"`
	TierSummary string `json:"tier_summary"`
	Checks      []struct {
		Name       string `json:"name"`
		Verdict    string `json:"verdict"`
		Score      int    `json:"score"`
		MaxScore   int    `json:"max_score"`
		Message    string `json:"message"`
		Suggestion string `json:"suggestion"`
	} `json:"checks"`
}

func decodeOutcome(body []byte) outcome {
	var env envelope
	Expect(json.Unmarshal(body, &env)).To(Succeed())
	Expect(env.Success).To(BeTrue(), "expected success envelope, got: %s", env.Message)

	var out outcome
	Expect(json.Unmarshal(env.Data, &out)).To(Succeed())
	return out
}
