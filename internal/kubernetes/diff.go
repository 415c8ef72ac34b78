package kubernetes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/explorer-platform/shipctl/internal/manifest"
)

// DiffImages compares the image set currently deployed in an environment
// against the build-result manifest and renders a human-readable report.
// Returns an empty string when nothing would change.
func (c *Client) DiffImages(ctx context.Context, namespace string, services []string, build *manifest.BuildResult, useColor bool) (string, error) {
	live := make(map[string]string, len(services))
	for _, service := range services {
		d, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, service, metav1.GetOptions{})
		if err != nil {
			// A deployment that does not exist yet simply has no live image.
			continue
		}
		containers := d.Spec.Template.Spec.Containers
		if len(containers) == 0 {
			continue
		}
		idx := findContainer(containers, service)
		if idx < 0 {
			idx = 0
		}
		live[service] = containers[idx].Image
	}

	desired := make(map[string]string, len(live))
	for service, image := range live {
		desired[service] = image
	}
	for _, service := range services {
		if image, ok := build.Lookup(service); ok {
			desired[service] = image
		}
	}

	liveYAML, err := yaml.Marshal(map[string]any{"images": live})
	if err != nil {
		return "", fmt.Errorf("marshaling live image set: %w", err)
	}
	desiredYAML, err := yaml.Marshal(map[string]any{"images": desired})
	if err != nil {
		return "", fmt.Errorf("marshaling desired image set: %w", err)
	}

	return diffYAML(liveYAML, desiredYAML, useColor)
}

// diffYAML computes a dyff report between two YAML snapshots.
func diffYAML(live, desired []byte, useColor bool) (string, error) {
	liveInput, err := parseYAMLInput("live", live)
	if err != nil {
		return "", fmt.Errorf("parsing live YAML: %w", err)
	}

	desiredInput, err := parseYAMLInput("desired", desired)
	if err != nil {
		return "", fmt.Errorf("parsing desired YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(liveInput, desiredInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report, useColor)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
