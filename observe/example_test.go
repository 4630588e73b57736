package observe_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/viewkit/observe"
)

func ExampleMiddleware_Wrap() {
	obs, err := observe.NewObserver(context.Background(), observe.Config{ServiceName: "example"})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer obs.Shutdown(context.Background())

	mw, _ := observe.MiddlewareFromObserver(obs)
	render := mw.Wrap(func(_ context.Context, meta *observe.TemplateMeta) (string, error) {
		return "rendered " + meta.Logical, nil
	})

	body, _ := render(context.Background(), &observe.TemplateMeta{Logical: "posts/show"})
	fmt.Println(body)
	// Output: rendered posts/show
}
