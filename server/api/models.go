package api

type Status struct {
	Template TemplateStatus `json:"template"`

	Output     string `json:"output"`
	OpenFolder bool   `json:"openFolder"`

	LayoutWidth int    `json:"layoutWidth"`
	Region      Region `json:"region"`
}

type TemplateStatus struct {
	Path      string `json:"path"`
	Available bool   `json:"available"`

	Error string `json:"error,omitempty"`
}

type Region struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`

	Zoom float64 `json:"zoom"`
}

type Layout struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
}

type FileStatus struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Text  string `json:"text"`
}

type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`

	Percent int `json:"percent"`
}

type Result struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`

	Rows    int      `json:"rows"`
	Skipped []string `json:"skipped,omitempty"`

	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`

	Locations []string `json:"locations,omitempty"`
}

type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
