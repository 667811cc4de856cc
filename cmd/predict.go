package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/markbook/internal/classify"
)

var (
	predictMarks      string
	predictIndividual float64
	predictOverall    float64
	predictJSON       bool
)

var predictCmd = &cobra.Command{
	Use:   "predict [dataset]",
	Short: "Predict the result for a new student",
	Long: "Predict classifies one hypothetical student from --marks without touching\n" +
		"any stored data. Name a dataset to validate the subjects against it;\n" +
		"subjects the dataset has but --marks leaves out count as zero.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		marks, err := parseMarks(predictMarks)
		if err != nil {
			return err
		}

		if path := resolveDataPath(args); path != "" {
			table, err := loadPath(path)
			if err != nil {
				return err
			}
			marks, err = alignMarks(marks, table.Subjects())
			if err != nil {
				return err
			}
		}

		th := classify.Thresholds{Individual: predictIndividual, Overall: predictOverall}
		row := classify.ClassifySingle(marks, th)

		if predictJSON {
			return printPredictionJSON(th, row)
		}
		printPredictionText(th, row)
		return nil
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictMarks, "marks", "", "comma-separated Subject=Mark pairs")
	predictCmd.Flags().Float64Var(&predictIndividual, "individual", classify.DefaultIndividual, "pass mark required in every subject")
	predictCmd.Flags().Float64Var(&predictOverall, "overall", classify.DefaultOverall, "pass mark required for the total")
	predictCmd.Flags().BoolVar(&predictJSON, "json", false, "print the prediction as JSON")
	_ = predictCmd.MarkFlagRequired("marks")
}

// parseMarks parses "Math=50,Science=45" into a marks map.
func parseMarks(s string) (map[string]float64, error) {
	marks := make(map[string]float64)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("bad mark %q: want Subject=Mark", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("bad mark for %s: %q is not a number", name, strings.TrimSpace(value))
		}
		if v < 0 {
			return nil, fmt.Errorf("bad mark for %s: marks cannot be negative", name)
		}
		if _, dup := marks[name]; dup {
			return nil, fmt.Errorf("subject %s given twice", name)
		}
		marks[name] = v
	}
	if len(marks) == 0 {
		return nil, fmt.Errorf("no marks given: use --marks Subject=Mark[,Subject=Mark...]")
	}
	return marks, nil
}

// alignMarks validates marks against the dataset's subjects and zero-fills
// the ones --marks left out.
func alignMarks(marks map[string]float64, subjects []string) (map[string]float64, error) {
	valid := make(map[string]bool, len(subjects))
	for _, sub := range subjects {
		valid[sub] = true
	}
	for name := range marks {
		if !valid[name] {
			return nil, fmt.Errorf("unknown subject %q: dataset has %s", name, strings.Join(subjects, ", "))
		}
	}

	aligned := make(map[string]float64, len(subjects))
	for _, sub := range subjects {
		aligned[sub] = marks[sub]
	}
	return aligned, nil
}

func printPredictionText(th classify.Thresholds, row classify.RowResult) {
	subjects := make([]string, 0, len(row.Marks))
	for name := range row.Marks {
		subjects = append(subjects, name)
	}
	sort.Strings(subjects)

	fmt.Printf("Pass rule: every subject ≥ %g and total ≥ %g\n\n", th.Individual, th.Overall)
	for _, name := range subjects {
		fmt.Printf("  %s: %s\n", name, formatNum(row.Marks[name]))
	}
	fmt.Println()
	fmt.Printf("Total Marks:          %s\n", formatNum(row.Total))
	fmt.Printf("Passed All Subjects:  %s\n", yesNo(row.PassedAllSubjects))
	fmt.Printf("Passed Overall Total: %s\n", yesNo(row.PassedOverall))
	fmt.Printf("\nFinal Prediction: %s\n", row.FinalResult)
}

type predictionDoc struct {
	Thresholds        thresholdsDoc      `json:"thresholds"`
	Marks             map[string]float64 `json:"marks"`
	Total             float64            `json:"total"`
	PassedAllSubjects bool               `json:"passed_all_subjects"`
	PassedOverall     bool               `json:"passed_overall"`
	FinalResult       string             `json:"final_result"`
}

func printPredictionJSON(th classify.Thresholds, row classify.RowResult) error {
	doc := predictionDoc{
		Thresholds:        thresholdsDoc{Individual: th.Individual, Overall: th.Overall},
		Marks:             row.Marks,
		Total:             row.Total,
		PassedAllSubjects: row.PassedAllSubjects,
		PassedOverall:     row.PassedOverall,
		FinalResult:       string(row.FinalResult),
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
