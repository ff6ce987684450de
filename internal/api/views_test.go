package api

import (
	"alcyxob/exercise-log/internal/domain"
	"encoding/json"
	"testing"
)

func TestMapExerciseToView(t *testing.T) {
	ex := &domain.Exercise{
		ID: 7, Name: "Supino", Series: 4, Repetitions: 8, Weight: 30,
		Descriptions: []domain.Description{{Text: "um"}, {Text: "dois"}},
	}
	got := MapExerciseToView(ex)
	if got.ID != 7 || got.Name != "Supino" || got.TotalDescriptions != 2 {
		t.Fatalf("unexpected view: %+v", got)
	}
	if got.Descriptions[0].Text != "um" || got.Descriptions[1].Text != "dois" {
		t.Fatalf("description order lost: %+v", got.Descriptions)
	}

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]interface{}
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"id", "nome", "series", "repeticoes", "quilos", "total_descricoes", "descricoes"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("missing key %q in %s", k, raw)
		}
	}
}

func TestMapExerciseToViewNil(t *testing.T) {
	got := MapExerciseToView(nil)
	if got.Descriptions == nil || got.TotalDescriptions != 0 {
		t.Fatalf("unexpected nil view: %+v", got)
	}
}

func TestMapExercisesToListViewEmpty(t *testing.T) {
	raw, err := json.Marshal(MapExercisesToListView(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"exercicios":[]}` {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestErrorResponseKeepsWireKey(t *testing.T) {
	raw, _ := json.Marshal(ErrorResponse{Message: "x"})
	if string(raw) != `{"mesage":"x"}` {
		t.Fatalf("unexpected body: %s", raw)
	}
	raw, _ = json.Marshal(DeleteExerciseResponse{Message: "Exercicio removido", Name: "Supino"})
	if string(raw) != `{"mesage":"Exercicio removido","id":"Supino"}` {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestUnescapeTwice(t *testing.T) {
	cases := map[string]string{
		"Supino":          "Supino",
		"Supino%2520Reto": "Supino Reto",
		"Supino%20Reto":   "Supino Reto",
		"45%":             "45%",
		"Rosca%252545":    "Rosca%45",
	}
	for in, want := range cases {
		if got := unescapeTwice(in); got != want {
			t.Fatalf("unescapeTwice(%q): got=%q want=%q", in, got, want)
		}
	}
}
