// Package manifest loads and validates the build-result manifest produced by
// the image build stage. The manifest maps service names to container image
// references; a service that was not built this run is carried as an absent
// entry, never as a magic string.
package manifest

import "sort"

// BuildResult is the validated mapping from service name to image reference
// for one pipeline run. It is immutable after loading.
type BuildResult struct {
	images map[string]string
	absent map[string]bool
}

// Lookup returns the image reference for a service.
// ok is false when the service was not built this run or is unknown.
func (r *BuildResult) Lookup(service string) (string, bool) {
	if r == nil {
		return "", false
	}
	image, ok := r.images[service]
	return image, ok
}

// Services returns the sorted names of all services with a valid image.
func (r *BuildResult) Services() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.images))
	for name := range r.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Declared reports whether the service appears in the manifest at all,
// built or not.
func (r *BuildResult) Declared(service string) bool {
	if r == nil {
		return false
	}
	if _, ok := r.images[service]; ok {
		return true
	}
	return r.absent[service]
}

// Len returns the number of services with a valid image.
func (r *BuildResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.images)
}

// Images returns a copy of the service-to-image mapping (valid entries only).
func (r *BuildResult) Images() map[string]string {
	if r == nil {
		return nil
	}
	out := make(map[string]string, len(r.images))
	for name, image := range r.images {
		out[name] = image
	}
	return out
}

// NewBuildResult builds a BuildResult from a plain mapping. Empty values are
// carried as absent entries. Intended for tests and programmatic callers; file
// input goes through Load, which also normalizes the legacy sentinels.
func NewBuildResult(images map[string]string) *BuildResult {
	r := &BuildResult{
		images: make(map[string]string, len(images)),
		absent: make(map[string]bool),
	}
	for name, image := range images {
		if image == "" {
			r.absent[name] = true
			continue
		}
		r.images[name] = image
	}
	return r
}
