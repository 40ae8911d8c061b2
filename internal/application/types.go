package application

import (
	"sync"
	"time"

	"github.com/viralforge/adforge/internal/domain"
	"github.com/viralforge/adforge/internal/ports"
)

type Config struct {
	ServiceName        string
	Pricing            domain.PricingTable
	MaxRewriteAttempts int
	EagerFrameBeats    int
	AssemblyTimeout    time.Duration
	FailureTolerance   float64
	QueuePollInterval  time.Duration
}

type Actor struct {
	SubjectID string
	Role      string
	RequestID string
}

type CreatePlanInput struct {
	Actor   domain.ActorProfile
	Preset  domain.StylePreset
	Brief   domain.CampaignBrief
	Product domain.ProductPlacement
}

type PlanResult struct {
	Campaign domain.Campaign
	Specs    []domain.BeatSpec
}

// CampaignDetail pairs a campaign with the selected clip per beat rank.
type CampaignDetail struct {
	Campaign domain.Campaign
	Clips    []domain.ClipVersion
}

type StartGenerationResult struct {
	Campaign         domain.Campaign
	BeatsQueued      int
	CreditsReserved  float64
	CreditsRemaining float64
}

type RegenerateInput struct {
	CampaignID string
	BeatOrder  int
	Action     domain.RegenerateAction
	Feedback   string
}

type EditScriptInput struct {
	CampaignID string
	BeatOrder  int
	Text       string
}

type SetAdjustmentsInput struct {
	CampaignID string
	BeatOrder  int
	TrimStart  float64
	TrimEnd    float64
	Speed      float64
}

type AssembleResult struct {
	Campaign      domain.Campaign
	ClipIDs       []string
	DegradedBeats []int
}

type EstimateResult struct {
	EstimatedCredits float64
	AvailableCredits float64
}

type Service struct {
	cfg Config

	campaigns ports.CampaignRepository
	clips     ports.ClipVersionRepository
	archives  ports.ArchiveRepository

	scripts  ports.ScriptModel
	images   ports.ImageSynthesizer
	video    ports.VideoEngine
	voice    ports.VoiceSynthesizer
	ambient  ports.AmbientSynthesizer
	mixer    ports.AudioMixer
	asr      ports.Transcriber
	xform    ports.Transformer
	ledger   ports.CreditLedger
	queue    ports.GenerationQueue
	progress ports.ProgressPublisher

	nowFn func() time.Time

	// canceled campaigns stop issuing new stage requests; in-flight vendor
	// calls are allowed to resolve.
	cancelMu sync.Mutex
	canceled map[string]bool
}

type Dependencies struct {
	Config Config

	Campaigns ports.CampaignRepository
	Clips     ports.ClipVersionRepository
	Archives  ports.ArchiveRepository

	Scripts  ports.ScriptModel
	Images   ports.ImageSynthesizer
	Video    ports.VideoEngine
	Voice    ports.VoiceSynthesizer
	Ambient  ports.AmbientSynthesizer
	Mixer    ports.AudioMixer
	ASR      ports.Transcriber
	Xform    ports.Transformer
	Ledger   ports.CreditLedger
	Queue    ports.GenerationQueue
	Progress ports.ProgressPublisher
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "adforge"
	}
	if cfg.Pricing == (domain.PricingTable{}) {
		cfg.Pricing = domain.DefaultPricing()
	}
	if cfg.MaxRewriteAttempts <= 0 {
		cfg.MaxRewriteAttempts = 2
	}
	if cfg.EagerFrameBeats <= 0 {
		cfg.EagerFrameBeats = 2
	}
	if cfg.AssemblyTimeout <= 0 {
		cfg.AssemblyTimeout = 2 * time.Minute
	}
	if cfg.FailureTolerance <= 0 || cfg.FailureTolerance > 1 {
		cfg.FailureTolerance = 0.5
	}
	if cfg.QueuePollInterval <= 0 {
		cfg.QueuePollInterval = 2 * time.Second
	}
	return &Service{
		cfg:       cfg,
		campaigns: deps.Campaigns,
		clips:     deps.Clips,
		archives:  deps.Archives,
		scripts:   deps.Scripts,
		images:    deps.Images,
		video:     deps.Video,
		voice:     deps.Voice,
		ambient:   deps.Ambient,
		mixer:     deps.Mixer,
		asr:       deps.ASR,
		xform:     deps.Xform,
		ledger:    deps.Ledger,
		queue:     deps.Queue,
		progress:  deps.Progress,
		nowFn:     func() time.Time { return time.Now().UTC() },
		canceled:  map[string]bool{},
	}
}
