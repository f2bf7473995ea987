package sink

import (
	"encoding/json"

	"github.com/matzehuels/licensecharts/pkg/render/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	dataset string
	runID   string
	compact bool
}

// WithJSONDataset records the name of the dataset the scene was built from.
func WithJSONDataset(name string) JSONOption { return func(r *jsonRenderer) { r.dataset = name } }

// WithJSONRunID records the pipeline run that produced the scene.
func WithJSONRunID(id string) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Dataset string `json:"dataset,omitempty"`
	RunID   string `json:"run_id,omitempty"`
	scene.Scene
}

// RenderJSON exports the scene graph as a JSON document: the frame size, the
// chart kind, and the primitives in paint order, each tagged with its kind.
//
// Equal scenes encode to identical bytes. RenderJSON does not modify s and is
// safe to call concurrently.
func RenderJSON(s scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Dataset: r.dataset, RunID: r.runID, Scene: s}
	if out.Primitives == nil {
		out.Primitives = []scene.Primitive{}
	}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

// ReadJSON decodes a document written by [RenderJSON] back into a scene.
func ReadJSON(data []byte) (scene.Scene, error) {
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return scene.Scene{}, err
	}
	return out.Scene, nil
}
