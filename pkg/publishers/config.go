package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	TypeQueue = "queue"
	TypeHTTP  = "http"

	QueueProviderAWSSQS = "aws-sqs"
	QueueProviderAWSSNS = "aws-sns"
	QueueProviderGCP    = "gcp"

	httpDefaultMethod         = "POST"
	httpDefaultTimeoutSeconds = 5
)

// PublisherConfig is one sink declared in the publishers file.
type PublisherConfig struct {
	ID      string                `json:"id" yaml:"id"`
	Type    string                `json:"type" yaml:"type"`
	Enabled *bool                 `json:"enabled" yaml:"enabled"`
	Queue   *QueuePublisherConfig `json:"queue" yaml:"queue"`
	HTTP    *HTTPPublisherConfig  `json:"http" yaml:"http"`
}

// QueuePublisherConfig selects a cloud queue provider.
type QueuePublisherConfig struct {
	Provider string                 `json:"provider" yaml:"provider"`
	AWS      *AWSSQSPublisherConfig `json:"aws" yaml:"aws"`
	SNS      *AWSSNSPublisherConfig `json:"sns" yaml:"sns"`
	GCP      *GCPQueueConfig        `json:"gcp" yaml:"gcp"`
}

type AWSSQSPublisherConfig struct {
	QueueURL        string `json:"uri" yaml:"uri"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

type AWSSNSPublisherConfig struct {
	TopicARN        string `json:"topic_arn" yaml:"topic_arn"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

type GCPQueueConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

type HTTPPublisherConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

type publishersFile struct {
	Publishers []PublisherConfig `json:"publishers" yaml:"publishers"`
}

// ConfigRegistry holds the validated publisher entries of one file.
type ConfigRegistry struct {
	mu         sync.RWMutex
	publishers []PublisherConfig
	idx        map[string]PublisherConfig
}

// LoadRegistry reads a YAML or JSON publishers file. ${VAR} references are
// expanded from the environment before decoding.
func LoadRegistry(path string) (*ConfigRegistry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}

	file, err := decodePublishersFile([]byte(os.ExpandEnv(string(raw))), filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewConfigRegistry(file.Publishers)
}

// NewConfigRegistry sanitizes and validates entries, rejecting duplicate ids.
func NewConfigRegistry(entries []PublisherConfig) (*ConfigRegistry, error) {
	if len(entries) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	reg := &ConfigRegistry{
		publishers: make([]PublisherConfig, 0, len(entries)),
		idx:        make(map[string]PublisherConfig, len(entries)),
	}
	for i, entry := range entries {
		cfg := entry.sanitized()
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, dup := reg.idx[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		reg.publishers = append(reg.publishers, cfg)
		reg.idx[cfg.ID] = cfg
	}
	return reg, nil
}

func decodePublishersFile(data []byte, ext string) (publishersFile, error) {
	var (
		file publishersFile
		err  error
	)
	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(data, &file)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, &file)
	default:
		return file, fmt.Errorf("publishers file extension %q not supported (expected .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return file, fmt.Errorf("decode publishers file: %w", err)
	}
	return file, nil
}

func (cfg PublisherConfig) sanitized() PublisherConfig {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))
	if cfg.Enabled == nil {
		on := true
		cfg.Enabled = &on
	}
	if cfg.Queue != nil {
		q := cfg.Queue.sanitized()
		cfg.Queue = &q
	}
	if cfg.HTTP != nil {
		h := cfg.HTTP.sanitized()
		cfg.HTTP = &h
	}
	return cfg
}

func (q QueuePublisherConfig) sanitized() QueuePublisherConfig {
	q.Provider = strings.ToLower(strings.TrimSpace(q.Provider))
	if q.AWS != nil {
		a := AWSSQSPublisherConfig{
			QueueURL:        strings.TrimSpace(q.AWS.QueueURL),
			Region:          strings.TrimSpace(q.AWS.Region),
			AccessKeyID:     strings.TrimSpace(q.AWS.AccessKeyID),
			SecretAccessKey: strings.TrimSpace(q.AWS.SecretAccessKey),
		}
		q.AWS = &a
	}
	if q.SNS != nil {
		s := AWSSNSPublisherConfig{
			TopicARN:        strings.TrimSpace(q.SNS.TopicARN),
			Region:          strings.TrimSpace(q.SNS.Region),
			AccessKeyID:     strings.TrimSpace(q.SNS.AccessKeyID),
			SecretAccessKey: strings.TrimSpace(q.SNS.SecretAccessKey),
		}
		q.SNS = &s
	}
	if q.GCP != nil {
		g := GCPQueueConfig{
			ProjectID:       strings.TrimSpace(q.GCP.ProjectID),
			Topic:           strings.TrimSpace(q.GCP.Topic),
			CredentialsFile: strings.TrimSpace(q.GCP.CredentialsFile),
		}
		q.GCP = &g
	}
	return q
}

func (h HTTPPublisherConfig) sanitized() HTTPPublisherConfig {
	h.URL = strings.TrimSpace(h.URL)
	h.Method = strings.ToUpper(strings.TrimSpace(h.Method))
	if h.Method == "" {
		h.Method = httpDefaultMethod
	}
	if h.TimeoutSeconds <= 0 {
		h.TimeoutSeconds = httpDefaultTimeoutSeconds
	}

	var headers map[string]string
	for k, v := range h.Headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		if headers == nil {
			headers = make(map[string]string, len(h.Headers))
		}
		headers[k] = v
	}
	h.Headers = headers
	return h
}

func (cfg PublisherConfig) validate() error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}
	switch cfg.Type {
	case "":
		return fmt.Errorf("type is required for publisher %q", cfg.ID)
	case TypeHTTP:
		if cfg.HTTP == nil {
			return fmt.Errorf("http config required for publisher %q", cfg.ID)
		}
		return requireFields(cfg.ID, "http", map[string]string{"url": cfg.HTTP.URL})
	case TypeQueue:
		if cfg.Queue == nil {
			return fmt.Errorf("queue config required for publisher %q", cfg.ID)
		}
		return cfg.Queue.validate(cfg.ID)
	default:
		return fmt.Errorf("type %q not supported for publisher %q", cfg.Type, cfg.ID)
	}
}

func (q *QueuePublisherConfig) validate(id string) error {
	switch q.Provider {
	case QueueProviderAWSSQS:
		if q.AWS == nil {
			return fmt.Errorf("sqs config required for publisher %q", id)
		}
		return requireFields(id, "sqs", map[string]string{
			"uri":               q.AWS.QueueURL,
			"region":            q.AWS.Region,
			"access_key_id":     q.AWS.AccessKeyID,
			"secret_access_key": q.AWS.SecretAccessKey,
		})
	case QueueProviderAWSSNS:
		if q.SNS == nil {
			return fmt.Errorf("sns config required for publisher %q", id)
		}
		return requireFields(id, "sns", map[string]string{
			"topic_arn":         q.SNS.TopicARN,
			"region":            q.SNS.Region,
			"access_key_id":     q.SNS.AccessKeyID,
			"secret_access_key": q.SNS.SecretAccessKey,
		})
	case QueueProviderGCP:
		if q.GCP == nil {
			return fmt.Errorf("gcp config required for publisher %q", id)
		}
		return requireFields(id, "gcp", map[string]string{
			"project_id": q.GCP.ProjectID,
			"topic":      q.GCP.Topic,
		})
	default:
		return fmt.Errorf("queue provider %q not supported for publisher %q", q.Provider, id)
	}
}

// requireFields reports the first empty field in a stable order.
func requireFields(id, section string, fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if fields[name] == "" {
			return fmt.Errorf("%s.%s is required for publisher %q", section, name, id)
		}
	}
	return nil
}

// ByID returns the publisher config by id.
func (r *ConfigRegistry) ByID(id string) (PublisherConfig, bool) {
	if r == nil {
		return PublisherConfig{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.idx[strings.TrimSpace(id)]
	return cfg, ok
}

// All returns all configured publishers in file order.
func (r *ConfigRegistry) All() []PublisherConfig {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PublisherConfig, len(r.publishers))
	copy(out, r.publishers)
	return out
}

// Enabled returns publishers that are enabled.
func (r *ConfigRegistry) Enabled() []PublisherConfig {
	var out []PublisherConfig
	for _, cfg := range r.All() {
		if cfg.EnabledValue() {
			out = append(out, cfg)
		}
	}
	return out
}

// EnabledValue returns enabled flag defaulting to true.
func (cfg PublisherConfig) EnabledValue() bool {
	return cfg.Enabled == nil || *cfg.Enabled
}
