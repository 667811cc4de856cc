package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/abhisek/markbook/internal/classify"
	"github.com/abhisek/markbook/internal/stats"
)

var (
	analyzeIndividual float64
	analyzeOverall    float64
	analyzeJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dataset]",
	Short: "Classify a dataset and print the results",
	Long: "Analyze loads a marks table, classifies every student against the pass\n" +
		"thresholds, and prints the annotated table, the outcome counts, and the\n" +
		"distribution of total marks.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveDataPath(args)
		if path == "" {
			return fmt.Errorf("no dataset named: pass a file or set MARKBOOK_DATA")
		}

		table, err := loadPath(path)
		if err != nil {
			return err
		}

		th := classify.Thresholds{Individual: analyzeIndividual, Overall: analyzeOverall}
		result, err := classify.Classify(table, th)
		if err != nil {
			return err
		}

		if analyzeJSON {
			return printAnalysisJSON(path, th, result)
		}
		printAnalysisText(path, th, result, table.HasName)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeIndividual, "individual", classify.DefaultIndividual, "pass mark required in every subject")
	analyzeCmd.Flags().Float64Var(&analyzeOverall, "overall", classify.DefaultOverall, "pass mark required for the total")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the analysis as JSON")
}

func printAnalysisText(source string, th classify.Thresholds, result *classify.Result, hasName bool) {
	rows := result.Rows

	fmt.Printf("Dataset: %s (%d students)\n", source, len(rows))
	fmt.Printf("Subject columns detected: %s\n", strings.Join(result.Subjects, ", "))
	fmt.Printf("Pass rule: every subject ≥ %g and total ≥ %g\n\n", th.Individual, th.Overall)

	w := tablewriter.NewWriter(os.Stdout)
	header := make([]string, 0, len(result.Subjects)+5)
	if hasName {
		header = append(header, "Name")
	}
	header = append(header, result.Subjects...)
	header = append(header, "Total", "All Subj", "Overall", "Result")
	w.SetHeader(header)

	for _, r := range rows {
		row := make([]string, 0, len(header))
		if hasName {
			row = append(row, r.Name)
		}
		for _, sub := range result.Subjects {
			row = append(row, formatNum(r.Marks[sub]))
		}
		row = append(row,
			formatNum(r.Total),
			yesNo(r.PassedAllSubjects),
			yesNo(r.PassedOverall),
			string(r.FinalResult),
		)
		w.Append(row)
	}
	w.Render()

	pass, fail := result.PassCount()
	fmt.Printf("\nPass %d, Fail %d", pass, fail)
	if len(rows) > 0 {
		fmt.Printf(" (%.1f%% pass rate)", float64(pass)/float64(len(rows))*100)
	}
	fmt.Println()

	if len(rows) == 0 {
		return
	}

	fmt.Println("\nDistribution of Total Marks")
	bins := stats.Histogram(result.Totals(), stats.DefaultBins)
	maxCount := stats.MaxCount(bins)
	for _, bin := range bins {
		bar := ""
		if maxCount > 0 {
			bar = strings.Repeat("█", bin.Count*40/maxCount)
		}
		if bar == "" && bin.Count > 0 {
			bar = "█"
		}
		fmt.Printf("  %9s  %-40s %d\n", fmt.Sprintf("%.0f-%.0f", bin.Lo, bin.Hi), bar, bin.Count)
	}
}

type analysisDoc struct {
	Source     string        `json:"source"`
	Thresholds thresholdsDoc `json:"thresholds"`
	Subjects   []string      `json:"subjects"`
	Rows       []rowDoc      `json:"rows"`
	PassCount  int           `json:"pass_count"`
	FailCount  int           `json:"fail_count"`
	Histogram  []binDoc      `json:"histogram,omitempty"`
}

type thresholdsDoc struct {
	Individual float64 `json:"individual"`
	Overall    float64 `json:"overall"`
}

type rowDoc struct {
	Name              string             `json:"name,omitempty"`
	Marks             map[string]float64 `json:"marks"`
	Total             float64            `json:"total"`
	PassedAllSubjects bool               `json:"passed_all_subjects"`
	PassedOverall     bool               `json:"passed_overall"`
	FinalResult       string             `json:"final_result"`
}

type binDoc struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

func printAnalysisJSON(source string, th classify.Thresholds, result *classify.Result) error {
	pass, fail := result.PassCount()
	doc := analysisDoc{
		Source:     source,
		Thresholds: thresholdsDoc{Individual: th.Individual, Overall: th.Overall},
		Subjects:   result.Subjects,
		Rows:       make([]rowDoc, 0, len(result.Rows)),
		PassCount:  pass,
		FailCount:  fail,
	}
	for _, r := range result.Rows {
		doc.Rows = append(doc.Rows, rowDoc{
			Name:              r.Name,
			Marks:             r.Marks,
			Total:             r.Total,
			PassedAllSubjects: r.PassedAllSubjects,
			PassedOverall:     r.PassedOverall,
			FinalResult:       string(r.FinalResult),
		})
	}
	if len(result.Rows) > 0 {
		for _, bin := range stats.Histogram(result.Totals(), stats.DefaultBins) {
			doc.Histogram = append(doc.Histogram, binDoc{Lo: bin.Lo, Hi: bin.Hi, Count: bin.Count})
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
