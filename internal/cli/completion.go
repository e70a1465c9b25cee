package cli

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles shell completion requests for the stockbook binary and
// exits when one is being served. It must run before flag parsing.
func Complete(name string, app *App) {
	completionCommand(app).Complete(name)
}

func completionCommand(app *App) *complete.Command {
	products := complete.PredictFunc(func(prefix string) []string {
		l, _, err := app.Open()
		if err != nil {
			return nil
		}
		return l.ProductNames()
	})
	plain := map[string]complete.Predictor{"plain": predict.Nothing}
	productFlags := map[string]complete.Predictor{
		"name":  products,
		"price": predict.Something,
		"stock": predict.Something,
	}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"data-dir": predict.Dirs("*"),
			"log-dir":  predict.Dirs("*"),
			"currency": predict.Something,
		},
		Sub: map[string]*complete.Command{
			"products": {Flags: plain},
			"add": {Flags: map[string]complete.Predictor{
				"name":  predict.Something,
				"price": predict.Something,
				"stock": predict.Something,
			}},
			"edit": {Flags: productFlags},
			"delete": {Flags: map[string]complete.Predictor{
				"name": products,
				"y":    predict.Nothing,
			}},
			"sell": {Flags: map[string]complete.Predictor{
				"product": products,
				"qty":     predict.Something,
				"date":    predict.Something,
			}},
			"sales": {Flags: plain},
			"search": {
				Flags: map[string]complete.Predictor{
					"mode":  predict.Set{"product", "transaction"},
					"plain": predict.Nothing,
				},
				Args: products,
			},
			"summary": {Flags: map[string]complete.Predictor{
				"start": predict.Something,
				"end":   predict.Something,
				"text":  predict.Nothing,
				"plain": predict.Nothing,
			}},
		},
	}
}
