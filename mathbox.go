package mathbox

import "fmt"

// Parse parses input into a list of nodes. The registry set with
// WithRegistry decides which commands exist.
func Parse(input string, settings ...Setting) ([]Node, error) {
	cfg := newConfig(settings)
	return newParser(input, cfg.registry, cfg.maxDepth).parse(cfg.mode)
}

// Build parses input and lays it out. The root span holds a strut of the
// full height and depth followed by the expression.
func Build(input string, settings ...Setting) (*Box, error) {
	cfg := newConfig(settings)
	nodes, err := newParser(input, cfg.registry, cfg.maxDepth).parse(cfg.mode)
	if err != nil {
		return nil, err
	}
	opts := cfg.rootOptions()
	boxes, err := newComposer(cfg.metrics, input, cfg.maxDepth).buildExpression(nodes, opts, true, [2]string{})
	if err != nil {
		return nil, err
	}
	return rootBox(boxes, opts, cfg.displayMode), nil
}

// Layout lays out nodes under opts. Only WithMetrics and WithMaxDepth apply;
// errors carry node positions without the source text.
func Layout(nodes []Node, opts Options, settings ...Setting) ([]*Box, error) {
	cfg := newConfig(settings)
	boxes, err := newComposer(cfg.metrics, "", cfg.maxDepth).buildExpression(nodes, opts, true, [2]string{})
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return boxes, nil
}

func rootBox(boxes []*Box, opts Options, display bool) *Box {
	body := makeSpan([]string{"base"}, boxes, &opts)
	strut := makeStrut(body.Height, body.Depth)
	classes := []string{"mathbox"}
	if display {
		classes = append(classes, "display")
	}
	return makeSpan(classes, []*Box{strut, body}, &opts)
}
