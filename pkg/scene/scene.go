package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/linkroute/pkg/diagram"
	errs "github.com/matzehuels/linkroute/pkg/errors"
)

// Scene is the input of a routing pass.
type Scene struct {
	Shapes []diagram.Shape `json:"shapes"`
	Links  []diagram.Link  `json:"links"`
}

// Shape returns the shape with the given id.
func (s *Scene) Shape(id string) (*diagram.Shape, bool) {
	for i := range s.Shapes {
		if s.Shapes[i].ID == id {
			return &s.Shapes[i], true
		}
	}
	return nil, false
}

// ReadJSON decodes a scene from r. Unknown fields are rejected so that
// typos in hand-written scenes surface as errors instead of silently
// detached links. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode scene")
	}
	return &s, nil
}

// ImportJSON reads the scene file at path.
func ImportJSON(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "scene %s not found", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes s as indented JSON. The output can be re-read with
// [ReadJSON].
func WriteJSON(s *Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode scene")
	}
	return nil
}

// ExportJSON writes s to a JSON file at path.
func ExportJSON(s *Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(s, f)
}

// idSpace is the namespace of ids derived by Normalize.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/linkroute/scene"))

// Normalize assigns an id to every shape and link without one and returns
// how many ids were assigned. Ids are name-based UUIDs over the element's
// kind, position and contents, so the same scene always gets the same ids.
// Links are never re-pointed: a shape that gains an id here cannot already
// be referenced by name.
func Normalize(s *Scene) int {
	n := 0
	for i := range s.Shapes {
		if s.Shapes[i].ID == "" {
			s.Shapes[i].ID = deriveID("shape", i, s.Shapes[i])
			n++
		}
	}
	for i := range s.Links {
		if s.Links[i].ID == "" {
			s.Links[i].ID = deriveID("link", i, s.Links[i])
			n++
		}
	}
	return n
}

func deriveID(kind string, index int, v any) string {
	// Values json cannot encode, such as NaN coordinates, fall back to
	// kind and index alone.
	data, _ := json.Marshal(v)
	name := fmt.Sprintf("%s/%d/%s", kind, index, data)
	return uuid.NewSHA1(idSpace, []byte(name)).String()
}
