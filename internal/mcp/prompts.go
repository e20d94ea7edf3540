package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("landing_page",
		mcp.WithPromptDescription("Guide through building a landing page from the empty layout"),
		mcp.WithArgument("product",
			mcp.ArgumentDescription("Product or topic the page is about"),
			mcp.RequiredArgument(),
		),
	), s.handleLandingPagePrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("translate_page",
		mcp.WithPromptDescription("Copy the current page into another language and translate its text"),
		mcp.WithArgument("lang",
			mcp.ArgumentDescription("Target BCP 47 language tag, e.g. de or pt-BR"),
			mcp.RequiredArgument(),
		),
	), s.handleTranslatePagePrompt)
}

func (s *Server) handleLandingPagePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	product := req.Params.Arguments["product"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Build a landing page for: %s", product),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build a landing page for "%s". Follow these steps:

1. Call get_page to learn the ids of the first section, row and columns
2. Set the title with update_page_meta
3. Hero: add a text component to the first column and a button to the second, then fill them with update_component_props
4. Features: add_section, then add_column so the row has three span-4 columns (update_column_span), one text component each
5. Gallery: add_section with a single full-width column holding a gallery component
6. Separate sections with spacer components where it helps readability
7. Review with get_page and finish with save_page

Use undo if a step goes wrong rather than deleting by hand.`, product),
				},
			},
		},
	}, nil
}

func (s *Server) handleTranslatePagePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	lang := req.Params.Arguments["lang"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Translate the current page into %s", lang),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Translate the current page into "%s". Follow these steps:

1. Call get_page and keep the full tree
2. Call load_page with the same slug and lang "%s"
3. Rebuild the structure: sections, rows, columns with the same spans
4. Add the same components in the same order and set their props, translating text, button labels and image alt text
5. Leave links, image sources and media ids unchanged
6. Finish with save_page`, lang, lang),
				},
			},
		},
	}, nil
}
