package config

const (
	// Site defaults
	DefaultBaseURL     = "https://computing.kku.ac.th"
	DefaultEmailDomain = "kku.ac.th"

	// Browser defaults
	DefaultBrowserBackend     = "auto"
	DefaultBrowserHeadless    = true
	DefaultNavTimeoutSecs     = 30
	DefaultWindowWidth        = 1400
	DefaultWindowHeight       = 1000
	DefaultBrowserUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	DefaultAcceptLanguage     = "th-TH,th;q=0.9,en-US;q=0.8,en;q=0.7"
	DefaultReadySettleMs      = 1000
	DefaultProfileKeywordWait = 10

	// Stabilizer defaults
	DefaultClickRounds        = 80
	DefaultClickSettleMs      = 600
	DefaultContainerRounds    = 40
	DefaultContainerSettleMs  = 300
	DefaultWindowScrollRounds = 20
	DefaultWindowSettleMs     = 250
	DefaultTabWaitSecs        = 6
	DefaultTabSettleMs        = 600

	// Output defaults
	DefaultOutputFile = "kku_people.json"

	// Storage defaults
	DefaultParquetBasePath  = "database"
	DefaultCompressionCodec = "zstd"

	// Run log defaults
	DefaultRunLogDBPath = "database/run_history.db"

	// Logging defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 10
	DefaultMaxLogBackups = 3
)

// DefaultSeedPaths are the listing pages visited in declared order.
var DefaultSeedPaths = []string{"/people", "/en/people", "/th/people"}

// DefaultLangPrefixes are path prefixes stripped before profile
// classification.
var DefaultLangPrefixes = []string{"/en", "/th"}

// DefaultTabLabels cover the "All" tab and the known directory categories in
// both site languages.
var DefaultTabLabels = []string{"ทั้งหมด", "All", "ผู้บริหาร", "สายวิชาการ", "สายสนับสนุน"}

// DefaultLoadMoreLabels is the multilingual vocabulary of pagination
// affordances, matched case-insensitively by substring.
var DefaultLoadMoreLabels = []string{
	"โหลดเพิ่ม", "โหลดเพิ่มเติม", "ดูเพิ่มเติม", "เพิ่มเติม",
	"Load more", "More", "Show more", "Next", "ถัดไป",
}

// DefaultExcludedLines are navigation-chrome fragments dropped from extracted
// info text, matched by substring.
var DefaultExcludedLines = []string{
	"เกี่ยวกับเรา", "ติดต่อเรา", "เข้าสู่ระบบ", "ข่าวสาร",
	"สิ่งอำนวยความสะดวก", "123 ถ.มิตรภาพ", "College of Computing",
	"ค้นหา", "A-", "A+", "|",
}

// DefaultEducationKeywords mark lines that belong to education history,
// matched case-insensitively.
var DefaultEducationKeywords = []string{
	"การศึกษา", "วุฒิ", "วุฒิการศึกษา", "ประวัติการศึกษา", "ปริญญา", "ระดับ",
	"มหาวิทยาลัย", "University", "Bachelor", "Master", "Ph.D", "PhD", "Degree",
}

// DefaultEducationTabLabels are the tab captions that open the education
// panel on profile pages.
var DefaultEducationTabLabels = []string{"การศึกษา", "Education", "ประวัติการศึกษา"}

// DefaultPhotoSkipMarkers disqualify image sources that are site chrome
// rather than portraits.
var DefaultPhotoSkipMarkers = []string{"icon", "logo", "favicon", "sprite", "_nuxt/img/en"}
