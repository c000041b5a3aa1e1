// 비즈케어 건강제도 CSV를 게시판 스토어로 옮기는 일회성 마이그레이션.
// 기존 health-policy 게시글은 삭제 처리하고 CSV의 각 제도를 새 게시글로
// 추가한다.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/repository"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/storage"
)

// welfareItem is one parsed CSV row
type welfareItem struct {
	Category    string
	Subcategory string
	Purpose     string
	Target      string
	Detail      string
	Method      string
	URL         string
	Document    string
	Department  string
}

var categoryMap = map[string]string{
	"신체건강": "PHYSICAL",
	"정신건강": "MENTAL",
	"기타":   "WELFARE",
}

func main() {
	csvPath := flag.String("csv", "", "건강제도 CSV 파일 경로")
	storePath := flag.String("store", "data/board-data.json", "게시판 스토어 경로")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *csvPath == "" {
		logger.Fatal("-csv 플래그는 필수입니다")
	}

	items, err := parseCSV(*csvPath)
	if err != nil {
		logger.Fatal("CSV 파싱 실패", zap.String("path", *csvPath), zap.Error(err))
	}
	logger.Info("CSV 파싱 완료", zap.Int("items", len(items)))

	store := storage.New(storage.DefaultOptions(), logger, nil)
	boardRepo := repository.NewBoardRepository(store, *storePath)

	created, retired := 0, 0
	err = boardRepo.Mutate(context.Background(), func(doc domain.BoardDocument) error {
		// 기존 health-policy 게시글은 삭제 처리
		for _, post := range doc {
			if post.BoardType == domain.BoardTypeHealthPolicy && !post.IsDeleted {
				post.IsDeleted = true
				retired++
			}
		}

		id := domain.NextPostID(doc)
		now := domain.Now()
		for _, item := range items {
			categoryCode, ok := categoryMap[item.Category]
			if !ok {
				categoryCode = "WELFARE"
			}

			doc.Put(&domain.Post{
				ID:           id,
				Title:        item.Subcategory,
				Content:      renderContent(item),
				AuthorName:   "관리자",
				AuthorID:     "admin",
				CreatedAt:    now,
				UpdatedAt:    now,
				CompanyName:  "대웅제약",
				CompanyNo:    45,
				ViewCount:    rand.Intn(1000) + 200,
				LikeCount:    rand.Intn(500),
				BoardType:    domain.BoardTypeHealthPolicy,
				Tag:          fmt.Sprintf(`["%s","건강제도","복지"]`, item.Category),
				CategoryCode: categoryCode,
				CategoryName: item.Category,
				Attachments:  []domain.Attachment{},
				Comments:     []domain.Comment{},
				IsPublic:     true,
			})
			id++
			created++
		}
		return nil
	})
	if err != nil {
		logger.Fatal("스토어 갱신 실패", zap.Error(err))
	}

	logger.Info("마이그레이션 완료",
		zap.Int("created", created),
		zap.Int("retired", retired))
}

// parseCSV reads the welfare CSV. The header sits on the third row; cells
// may contain quoted newlines. An empty category inherits from the row
// above.
func parseCSV(path string) ([]welfareItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) <= 3 {
		return nil, fmt.Errorf("expected header on row 3, got %d rows", len(rows))
	}

	var items []welfareItem
	for _, row := range rows[3:] {
		if len(row) < 9 || strings.TrimSpace(row[1]) == "" {
			continue
		}
		item := welfareItem{
			Category:    strings.TrimSpace(row[0]),
			Subcategory: strings.TrimSpace(row[1]),
			Purpose:     strings.TrimSpace(row[2]),
			Target:      strings.TrimSpace(row[3]),
			Detail:      strings.TrimSpace(row[4]),
			Method:      strings.TrimSpace(row[5]),
			URL:         strings.TrimSpace(row[6]),
			Document:    strings.TrimSpace(row[7]),
			Department:  strings.TrimSpace(row[8]),
		}
		if item.Category == "" && len(items) > 0 {
			item.Category = items[len(items)-1].Category
		}
		items = append(items, item)
	}
	return items, nil
}

// renderContent builds the HTML body of a welfare post, section by section
func renderContent(item welfareItem) string {
	var b strings.Builder

	b.WriteString(`<div style="padding-top:50px; height:0px; overflow:hidden;"></div>`)
	b.WriteString(fmt.Sprintf(`<p style="text-align: center;"><span style="font-family:Nanum Gothic;"><span style="font-size:20px;"><b>%s</b></span></span></p>`, item.Subcategory))
	b.WriteString(`<p style="text-align: center;">&nbsp;</p>`)

	if item.Purpose != "" {
		writeSection(&b, "📌 목적/취지", item.Purpose)
	}
	if item.Target != "" {
		writeSection(&b, "👥 제공대상", item.Target)
	}
	if item.Detail != "" {
		writeHeading(&b, "📋 상세 내용")
		details := nonEmptyLines(item.Detail)
		if len(details) > 1 {
			b.WriteString(`<ul>`)
			for _, d := range details {
				b.WriteString(fmt.Sprintf(`<li><span style="font-family:Nanum Gothic;"><span style="font-size:16px;">%s</span></span></li>`, d))
			}
			b.WriteString(`</ul>`)
		} else {
			writeParagraph(&b, item.Detail)
		}
		b.WriteString(`<p>&nbsp;</p>`)
	}
	// 상시 진행 제도는 진행방식 섹션을 생략한다
	if item.Method != "" && item.Method != "상시" {
		writeSection(&b, "🔄 진행방식", item.Method)
	}
	if item.URL != "" && item.URL != "-" {
		writeHeading(&b, "📝 신청방법")
		for _, u := range nonEmptyLines(item.URL) {
			if strings.HasPrefix(u, "http") {
				b.WriteString(fmt.Sprintf(`<p><a href="%s" target="_blank"><span style="font-family:Nanum Gothic;"><span style="font-size:16px;"><u>%s</u></span></span></a></p>`, u, u))
			} else {
				writeParagraph(&b, u)
			}
		}
		b.WriteString(`<p>&nbsp;</p>`)
	}
	if item.Department != "" {
		writeHeading(&b, "☎️ 담당부서")
		writeParagraph(&b, item.Department)
	}

	return b.String()
}

func writeHeading(b *strings.Builder, title string) {
	b.WriteString(fmt.Sprintf(`<h3><span style="font-family:Nanum Gothic;"><span style="font-size:18px;"><b>%s</b></span></span></h3>`, title))
}

func writeParagraph(b *strings.Builder, text string) {
	b.WriteString(fmt.Sprintf(`<p><span style="font-family:Nanum Gothic;"><span style="font-size:16px;">%s</span></span></p>`,
		strings.ReplaceAll(text, "\n", "<br>")))
}

func writeSection(b *strings.Builder, title, text string) {
	writeHeading(b, title)
	writeParagraph(b, text)
	b.WriteString(`<p>&nbsp;</p>`)
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
