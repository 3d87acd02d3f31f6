package extractor

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/kkupeople/internal/config"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := New(config.NewDefaultScrapeConfig(), config.NewDefaultStabilizerConfig(), zerolog.Nop())
	require.NoError(t, err)
	return e
}

func TestSplitBilingualName(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		wantTH string
		wantEN string
	}{
		{
			name:   "bilingual title splits at first latin run",
			title:  "ผศ.ดร. สมชาย ใจดี (Asst. Prof. Dr. Somchai Jaidee)",
			wantTH: "ผศ.ดร. สมชาย ใจดี",
			wantEN: "Asst. Prof. Dr. Somchai Jaidee",
		},
		{
			name:   "thai only",
			title:  "สมหญิง รักเรียน",
			wantTH: "สมหญิง รักเรียน",
			wantEN: "",
		},
		{
			name:   "latin only",
			title:  "John Smith",
			wantTH: "",
			wantEN: "John Smith",
		},
		{
			name:  "empty",
			title: "",
		},
		{
			name:   "dash separated",
			title:  "สมชาย ใจดี - Somchai Jaidee",
			wantTH: "สมชาย ใจดี",
			wantEN: "Somchai Jaidee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, en := SplitBilingualName(tt.title)
			assert.Equal(t, tt.wantTH, th)
			assert.Equal(t, tt.wantEN, en)
		})
	}
}

func TestExtractFromHTML_TabularEducation(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="สมชาย ใจดี Somchai Jaidee">
		<meta property="og:image" content="https://computing.kku.ac.th/img/somchai.jpg">
	</head><body>
		<div role="tabpanel">
			<p>อาจารย์ประจำสาขาวิทยาการคอมพิวเตอร์</p>
			<p>ห้องทำงาน CP-101</p>
		</div>
		<div role="tabpanel">
			<table><tbody>
				<tr><th>ระดับ</th><th>สาขา</th></tr>
				<tr><td>ปริญญาเอก</td><td>Ph.D.<br>Computer Science</td><td>Khon Kaen University</td></tr>
				<tr><td>ปริญญาตรี</td><td>วิทยาการคอมพิวเตอร์</td></tr>
			</tbody></table>
		</div>
		<a href="mailto:somchai@kku.ac.th">somchai@kku.ac.th</a>
	</body></html>`

	e := newTestExtractor(t)
	record, err := e.ExtractFromHTML(html, "https://computing.kku.ac.th/somchai.j/")
	require.NoError(t, err)

	assert.Equal(t, "สมชาย ใจดี", record.NameTH)
	assert.Equal(t, "Somchai Jaidee", record.NameEN)
	assert.Equal(t, "อาจารย์ประจำสาขาวิทยาการคอมพิวเตอร์", record.Position)
	assert.Equal(t, "ปริญญาเอก | Ph.D. Computer Science | Khon Kaen University\nปริญญาตรี | วิทยาการคอมพิวเตอร์",
		record.Education, "data rows in row order, cells pipe-joined, header row skipped")
	assert.Equal(t, "somchai@kku.ac.th", record.Email)
	assert.Equal(t, "https://computing.kku.ac.th/img/somchai.jpg", record.PhotoURL)
	assert.Equal(t, "https://computing.kku.ac.th/somchai.j", record.ProfileURL, "trailing slash stripped")
	assert.Contains(t, record.Info, "ห้องทำงาน CP-101")
}

func TestExtractFromHTML_ListEducation(t *testing.T) {
	html := `<html><head><meta property="og:title" content="Jane Doe"></head><body>
		<div role="tabpanel"><p>อาจารย์พิเศษ</p></div>
		<div role="tabpanel">
			<ul>
				<li>Ph.D. Computer Science, Khon Kaen University</li>
				<li>B.Sc. Mathematics</li>
			</ul>
		</div>
	</body></html>`

	e := newTestExtractor(t)
	record, err := e.ExtractFromHTML(html, "https://computing.kku.ac.th/jane.d")
	require.NoError(t, err)

	assert.Equal(t, "Ph.D. Computer Science, Khon Kaen University\nB.Sc. Mathematics", record.Education)
}

func TestExtractFromHTML_KeywordFilteredEducation(t *testing.T) {
	html := `<html><head><meta property="og:title" content="สมหญิง Somying"></head><body>
		<p>ตำแหน่ง: ผู้ช่วยศาสตราจารย์</p>
		<p>ปริญญาเอก มหาวิทยาลัยขอนแก่น</p>
		<p>สนใจด้านปัญญาประดิษฐ์</p>
		<p>ปริญญาเอก มหาวิทยาลัยขอนแก่น</p>
	</body></html>`

	e := newTestExtractor(t)
	record, err := e.ExtractFromHTML(html, "https://computing.kku.ac.th/somying.k")
	require.NoError(t, err)

	assert.Equal(t, "ปริญญาเอก มหาวิทยาลัยขอนแก่น", record.Education,
		"keyword lines only, deduplicated in first-seen order")
	assert.Equal(t, "ผู้ช่วยศาสตราจารย์", record.Position, "remainder of the labelled line")
	assert.NotContains(t, record.Info, "ปริญญาเอก", "education lines are dropped from info")
	assert.Contains(t, record.Info, "สนใจด้านปัญญาประดิษฐ์")
}

func TestExtractFromHTML_ChromeLinesExcluded(t *testing.T) {
	html := `<html><body><div>
		<p>เกี่ยวกับเรา</p>
		<p>123 ถ.มิตรภาพ ต.ในเมือง</p>
		<p>สนใจระบบฐานข้อมูลขนาดใหญ่</p>
	</div></body></html>`

	e := newTestExtractor(t)
	record, err := e.ExtractFromHTML(html, "https://computing.kku.ac.th/x.y")
	require.NoError(t, err)

	assert.NotContains(t, record.Info, "เกี่ยวกับเรา")
	assert.NotContains(t, record.Info, "มิตรภาพ")
	assert.Contains(t, record.Info, "สนใจระบบฐานข้อมูลขนาดใหญ่")
}

func TestExtractFromHTML_EmailFallbackFromText(t *testing.T) {
	html := `<html><body><p>ติดต่อ somying.k@kku.ac.th ในเวลาราชการ</p></body></html>`

	e := newTestExtractor(t)
	record, err := e.ExtractFromHTML(html, "https://computing.kku.ac.th/somying.k")
	require.NoError(t, err)

	assert.Equal(t, "somying.k@kku.ac.th", record.Email)
}

func TestExtractFromHTML_PhotoSkipsChromeImages(t *testing.T) {
	html := `<html><body>
		<img src="/img/site-logo.png">
		<img src="/icons/search.svg">
		<img src="/uploads/staff/somchai.jpg">
	</body></html>`

	e := newTestExtractor(t)
	record, err := e.ExtractFromHTML(html, "https://computing.kku.ac.th/somchai.j")
	require.NoError(t, err)

	assert.Equal(t, "https://computing.kku.ac.th/uploads/staff/somchai.jpg", record.PhotoURL,
		"logo and icon sources are skipped, relative source resolved against the site origin")
}

func TestExtractFromHTML_EmptyPageYieldsEmptyRecord(t *testing.T) {
	e := newTestExtractor(t)
	record, err := e.ExtractFromHTML("<html><body></body></html>", "https://computing.kku.ac.th/a.b")
	require.NoError(t, err)

	assert.Empty(t, record.NameTH)
	assert.Empty(t, record.NameEN)
	assert.Empty(t, record.Email)
	assert.Empty(t, record.PhotoURL)
	assert.Equal(t, "https://computing.kku.ac.th/a.b", record.ProfileURL)
}

func TestExtractFromHTML_HeadingFallbackForNames(t *testing.T) {
	html := `<html><body><h1>สมชาย ใจดี Somchai Jaidee</h1></body></html>`

	e := newTestExtractor(t)
	record, err := e.ExtractFromHTML(html, "https://computing.kku.ac.th/somchai.j")
	require.NoError(t, err)

	assert.Equal(t, "สมชาย ใจดี", record.NameTH)
	assert.Equal(t, "Somchai Jaidee", record.NameEN)
}
