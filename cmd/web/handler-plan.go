package main

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/errors"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/planner"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/workoutplan"
	"github.com/go-chi/chi/v5"
)

//nolint:gochecknoglobals // parsed once at start-up.
var planPage = template.Must(template.New("plan").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Workout plan</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; text-align: left; }
</style>
</head>
<body>
<main>
{{ .Content }}
</main>
</body>
</html>
`))

type planTemplateData struct {
	Content template.HTML
}

func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	doc, err := app.plans.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, workoutplan.ErrInvalidUserID) || errors.Is(err, workoutplan.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if doc.WorkoutPlan == nil {
		app.notFound(w, r)
		return
	}

	var content bytes.Buffer
	if err = app.markdown.Convert([]byte(planMarkdown(*doc.WorkoutPlan)), &content); err != nil {
		app.serverError(w, r, errors.Wrap(err, "convert plan markdown"))
		return
	}

	var page bytes.Buffer
	//nolint:gosec // goldmark escapes raw HTML unless WithUnsafe is set.
	data := planTemplateData{Content: template.HTML(content.String())}
	if err = planPage.Execute(&page, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute plan template"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = page.WriteTo(w)
}

// planMarkdown summarises a plan as Markdown with one table per day.
func planMarkdown(plan planner.PlanDocument) string {
	var b strings.Builder
	b.WriteString("# Weekly workout plan\n\n")
	fmt.Fprintf(&b, "Generated at %s. Total weekly calories: **%s**.\n", plan.GeneratedAt,
		formatFloat(plan.TotalWeeklyCalories))

	for _, day := range plan.WeeklyPlan {
		fmt.Fprintf(&b, "\n## Day %d: %s\n\n", day.DayNumber, escapeCell(strings.Join(day.MuscleGroups, ", ")))
		b.WriteString("| Exercise | Muscle | Equipment | Volume | Calories |\n")
		b.WriteString("| --- | --- | --- | --- | ---: |\n")
		for _, ex := range day.Exercises {
			equipment := "none"
			if len(ex.Equipment) > 0 {
				equipment = strings.Join(ex.Equipment, ", ")
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				escapeCell(ex.Name), escapeCell(ex.PrimaryMuscle), escapeCell(equipment), volume(ex),
				formatFloat(ex.Calories))
		}
		fmt.Fprintf(&b, "\nDay total: **%s** calories.\n", formatFloat(day.TotalCalories))
	}
	return b.String()
}

func volume(ex planner.ExerciseDocument) string {
	switch {
	case ex.DurationMinutes != nil:
		return strconv.Itoa(*ex.DurationMinutes) + " min"
	case ex.Sets != nil && ex.Reps != nil:
		return fmt.Sprintf("%d × %d", *ex.Sets, *ex.Reps)
	default:
		return ""
	}
}

// escapeCell keeps user supplied text from breaking out of a table cell.
func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

// formatFloat formats a float without trailing zeros.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
