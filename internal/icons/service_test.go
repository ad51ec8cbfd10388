package icons

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"fintouch/assistant/internal/ai"
	"fintouch/assistant/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(invoker ai.Invoker) *Service {
	return NewService(invoker, "test-model", &logging.MockLogger{})
}

func TestSuggest_FiltersHallucinatedNames(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{"icons": ["PawPrint", "DoggoFace", "Dog", "Bone", "Cat"]}`),
	}
	svc := newTestService(invoker)

	icons := svc.Suggest(context.Background(), "Mascotas")

	assert.Equal(t, []string{"PawPrint", "Dog", "Cat"}, icons)
	for _, name := range icons {
		assert.True(t, IsKnown(name))
	}
}

func TestSuggest_CapsAtFiveSuggestions(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{"icons": ["Coffee", "Pizza", "Beer", "Wine", "Apple", "Carrot", "Utensils"]}`),
	}
	svc := newTestService(invoker)

	icons := svc.Suggest(context.Background(), "Comida")
	assert.Len(t, icons, MaxSuggestions)
	assert.Equal(t, []string{"Coffee", "Pizza", "Beer", "Wine", "Apple"}, icons)
}

func TestSuggest_DropsDuplicates(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{"icons": ["Plane", "Plane", "Hotel"]}`),
	}
	svc := newTestService(invoker)

	icons := svc.Suggest(context.Background(), "Viajes")
	assert.Equal(t, []string{"Plane", "Hotel"}, icons)
}

func TestSuggest_BackendFailureDegradesToEmpty(t *testing.T) {
	invoker := &ai.MockInvoker{Err: errors.New("backend unavailable")}
	svc := newTestService(invoker)

	icons := svc.Suggest(context.Background(), "Viajes")
	assert.Empty(t, icons)
}

func TestSuggest_PromptCarriesCategoryAndVocabulary(t *testing.T) {
	invoker := &ai.MockInvoker{Output: json.RawMessage(`{"icons": []}`)}
	svc := newTestService(invoker)

	svc.Suggest(context.Background(), "Mascotas")

	require.Len(t, invoker.Calls, 1)
	prompt := invoker.Calls[0].Prompt
	assert.Contains(t, prompt, "Mascotas")
	assert.Contains(t, prompt, "PawPrint")
	assert.Contains(t, prompt, "ShoppingCart")
}

func TestFilter_AllMembersOfVocabulary(t *testing.T) {
	input := []string{"NotAnIcon", "Wallet", "", "Gift", "wallet"}
	filtered := Filter(input)
	assert.Equal(t, []string{"Wallet", "Gift"}, filtered, "matching is exact, unknown and miscased names are dropped")
}
