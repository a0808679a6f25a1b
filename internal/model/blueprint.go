package model

// Discipline identifies which planning discipline a drawing belongs to.
type Discipline string

const (
	DisciplineArchitectural Discipline = "architectural"
	DisciplineStructural    Discipline = "structural"
	DisciplineElectrical    Discipline = "electrical"
	DisciplinePlumbing      Discipline = "plumbing"
	DisciplineHVAC          Discipline = "hvac"
)

// Blueprint describes a single source drawing as handed over by the
// ingestion collaborator. Zero values mean "not stated on the drawing".
type Blueprint struct {
	Name       string     `json:"name" yaml:"name"`
	Path       string     `json:"path,omitempty" yaml:"path,omitempty"`
	Format     string     `json:"format,omitempty" yaml:"format,omitempty"`
	Discipline Discipline `json:"discipline,omitempty" yaml:"discipline,omitempty"`

	// Overall building dimensions in meters.
	Width           float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Length          float64 `json:"length,omitempty" yaml:"length,omitempty"`
	Height          float64 `json:"height,omitempty" yaml:"height,omitempty"`
	IndoorFloorArea float64 `json:"indoor_floor_area,omitempty" yaml:"indoor_floor_area,omitempty"`

	Dimensions DimensionFlags `json:"dimensions" yaml:"dimensions"`
	Details    DetailFlags    `json:"details" yaml:"details"`

	Electrical *ElectricalPlan `json:"electrical,omitempty" yaml:"electrical,omitempty"`
	Plumbing   *PlumbingPlan   `json:"plumbing,omitempty" yaml:"plumbing,omitempty"`

	// Elements, when present, are pre-recognized and bypass recognition.
	Elements *ElementSet `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// DisplayName returns Name, falling back to Path.
func (b Blueprint) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return b.Path
}

// DimensionFlags records which dimension groups the drawing specifies.
type DimensionFlags struct {
	Rooms    bool `json:"rooms" yaml:"rooms"`
	Openings bool `json:"openings" yaml:"openings"`
	Stairs   bool `json:"stairs" yaml:"stairs"`
}

// DetailFlags records which construction details the drawing includes.
type DetailFlags struct {
	Shelter  bool `json:"shelter" yaml:"shelter"`
	Kitchen  bool `json:"kitchen" yaml:"kitchen"`
	Bathroom bool `json:"bathroom" yaml:"bathroom"`
	Roof     bool `json:"roof" yaml:"roof"`
	Stairs   bool `json:"stairs" yaml:"stairs"`
}

// ElectricalPlan lists what an electrical drawing marks up.
type ElectricalPlan struct {
	PowerPoints          bool `json:"power_points" yaml:"power_points"`
	HeightSpecifications bool `json:"height_specifications" yaml:"height_specifications"`
	MainPanel            bool `json:"main_panel" yaml:"main_panel"`
	Grounding            bool `json:"grounding" yaml:"grounding"`
}

// PlumbingPlan lists what a plumbing drawing marks up.
type PlumbingPlan struct {
	WaterPoints bool `json:"water_points" yaml:"water_points"`
	Sewage      bool `json:"sewage" yaml:"sewage"`
	FloorSlopes bool `json:"floor_slopes" yaml:"floor_slopes"`
	PipeSizes   bool `json:"pipe_sizes" yaml:"pipe_sizes"`
}
