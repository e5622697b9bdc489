package engine

// Topology is the subset of a TopoJSON document the data layer reads: the
// labels of the features in the "countries" object. Geometry is left to the
// map renderer.
type Topology struct {
	Type    string `json:"type"`
	Objects struct {
		Countries struct {
			Geometries []struct {
				Properties struct {
					Name string `json:"name"`
				} `json:"properties"`
			} `json:"geometries"`
		} `json:"countries"`
	} `json:"objects"`
}

// CountryLabels returns the feature labels in document order.
func (t *Topology) CountryLabels() []string {
	if t == nil {
		return []string{}
	}
	geoms := t.Objects.Countries.Geometries
	labels := make([]string, 0, len(geoms))
	for _, g := range geoms {
		labels = append(labels, g.Properties.Name)
	}
	return labels
}
