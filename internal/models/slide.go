package models

// Layout discriminates the slide variants of the deck.
type Layout string

const (
	LayoutBrand           Layout = "brand"
	LayoutSynopsis        Layout = "synopsis"
	LayoutMetricDashboard Layout = "metric-dashboard"
	LayoutSpaceFramework  Layout = "space-framework"
	LayoutSecurityPosture Layout = "security-posture"
)

// Slide is a closed union over the deck's layout variants. The isSlide
// marker keeps the set sealed: adding a variant forces an implementation
// here, and the type switches in the knowledge service fail loudly on
// anything they do not handle.
type Slide interface {
	SlideID() string
	SlideLayout() Layout
	isSlide()
}

// InfoBlock is the explanatory panel every slide carries.
type InfoBlock struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Utility  string `json:"utility,omitempty"`
	Insights string `json:"insights,omitempty"`
}

type HeroBlock struct {
	Kicker  string `json:"kicker,omitempty"`
	Title   string `json:"title"`
	Tagline string `json:"tagline,omitempty"`
}

type MetaDetail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type SynopsisBlock struct {
	Paragraphs []string         `json:"paragraphs"`
	Pillars    []string         `json:"pillars"`
	Findings   []string         `json:"findings"`
	Sources    []SourceDocument `json:"sources"`
}

// BrandSlide is the opening title slide; it always has id "intro" and
// is always first in the deck.
type BrandSlide struct {
	ID          string       `json:"id"`
	Hero        HeroBlock    `json:"hero"`
	MetaDetails []MetaDetail `json:"meta_details"`
	Info        InfoBlock    `json:"info"`
	Benchmark   string       `json:"benchmark,omitempty"`
}

func (s BrandSlide) SlideID() string     { return s.ID }
func (s BrandSlide) SlideLayout() Layout { return LayoutBrand }
func (BrandSlide) isSlide()              {}

type SynopsisSlide struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Subtitle  string        `json:"subtitle,omitempty"`
	Synopsis  SynopsisBlock `json:"synopsis"`
	Info      InfoBlock     `json:"info"`
	Benchmark string        `json:"benchmark,omitempty"`
}

func (s SynopsisSlide) SlideID() string     { return s.ID }
func (s SynopsisSlide) SlideLayout() Layout { return LayoutSynopsis }
func (SynopsisSlide) isSlide()              {}

// MetricDashboardSlide renders a DORA-shaped metric grid; FrameworkID
// tells the two dashboard instances ("dora", "blueoptima") apart.
type MetricDashboardSlide struct {
	ID          string            `json:"id"`
	FrameworkID string            `json:"framework_id"`
	Title       string            `json:"title"`
	Subtitle    string            `json:"subtitle,omitempty"`
	Metrics     []FrameworkMetric `json:"metrics"`
	Info        InfoBlock         `json:"info"`
	Benchmark   string            `json:"benchmark,omitempty"`
}

func (s MetricDashboardSlide) SlideID() string     { return s.ID }
func (s MetricDashboardSlide) SlideLayout() Layout { return LayoutMetricDashboard }
func (MetricDashboardSlide) isSlide()              {}

type SpaceFrameworkSlide struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Subtitle      string           `json:"subtitle,omitempty"`
	Dimensions    []SpaceDimension `json:"dimensions"`
	OverallScore  float64          `json:"overall_score"`
	OverallTarget float64          `json:"overall_target"`
	Info          InfoBlock        `json:"info"`
	Benchmark     string           `json:"benchmark,omitempty"`
}

func (s SpaceFrameworkSlide) SlideID() string     { return s.ID }
func (s SpaceFrameworkSlide) SlideLayout() Layout { return LayoutSpaceFramework }
func (SpaceFrameworkSlide) isSlide()              {}

type SecurityPostureSlide struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle,omitempty"`
	Practices     []SammPractice `json:"practices"`
	OverallLevel  float64        `json:"overall_level"`
	OverallTarget float64        `json:"overall_target"`
	Info          InfoBlock      `json:"info"`
	Benchmark     string         `json:"benchmark,omitempty"`
}

func (s SecurityPostureSlide) SlideID() string     { return s.ID }
func (s SecurityPostureSlide) SlideLayout() Layout { return LayoutSecurityPosture }
func (SecurityPostureSlide) isSlide()              {}
