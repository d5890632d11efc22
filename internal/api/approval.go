package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentDeletes bounds the fan-out of RemoveWorkflows.
const maxConcurrentDeletes = 4

// GroupRef names an approver group by display name and UUID.
type GroupRef struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

// Workflow is an ordered approval step.
type Workflow struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Sequence    int        `json:"sequence,omitempty"`
	TemplateID  string     `json:"template_id,omitempty"`
	GroupRefs   []GroupRef `json:"group_refs"`
	CreatedAt   string     `json:"created_at,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
}

// Item flattens the workflow for display. Groups are shown by name.
func (w Workflow) Item() Item {
	groups := make([]string, len(w.GroupRefs))
	for i, g := range w.GroupRefs {
		groups[i] = g.Name
	}
	return NewItem(
		"id", w.ID,
		"name", w.Name,
		"description", w.Description,
		"sequence", w.Sequence,
		"template_id", w.TemplateID,
		"group_refs", groups,
		"created_at", w.CreatedAt,
		"updated_at", w.UpdatedAt,
	)
}

// WorkflowInput is the writable part of a workflow.
type WorkflowInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	GroupRefs   []GroupRef `json:"group_refs"`
}

// Template groups workflows with the items they govern.
type Template struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// WorkflowsCollection is the workflow list endpoint.
func (c *Client) WorkflowsCollection() Collection {
	return Collection{Name: "workflows", URL: c.approvalBase + "/workflows/", Style: ApprovalStyle}
}

// TemplatesCollection is the template list endpoint.
func (c *Client) TemplatesCollection() Collection {
	return Collection{Name: "templates", URL: c.approvalBase + "/templates/", Style: ApprovalStyle}
}

// FetchWorkflow loads one workflow.
func (c *Client) FetchWorkflow(ctx context.Context, id string) (Workflow, error) {
	if id == "" {
		return Workflow{}, ErrMissingID
	}
	var out Workflow
	err := c.getJSON(ctx, c.workflowURL(id)+"/", &out)
	return out, err
}

// FetchWorkflowByName returns the workflows whose name matches exactly as
// judged by the approval service.
func (c *Client) FetchWorkflowByName(ctx context.Context, name string) ([]Workflow, error) {
	q := url.Values{ParamName: []string{name}}
	var envelope struct {
		Data []Workflow `json:"data"`
	}
	if err := c.getJSON(ctx, c.approvalBase+"/workflows/?"+q.Encode(), &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// UpdateWorkflow patches a workflow with the given fields.
func (c *Client) UpdateWorkflow(ctx context.Context, id string, in WorkflowInput) (Workflow, error) {
	if id == "" {
		return Workflow{}, ErrMissingID
	}
	var out Workflow
	err := c.sendJSON(ctx, http.MethodPatch, c.workflowURL(id), in, &out)
	return out, err
}

// RepositionWorkflow moves a workflow to a new position in its template.
func (c *Client) RepositionWorkflow(ctx context.Context, id string, sequence int) error {
	if id == "" {
		return ErrMissingID
	}
	if sequence < 1 {
		return fmt.Errorf("sequence must be >= 1, got %d", sequence)
	}
	body := struct {
		Sequence int `json:"sequence"`
	}{Sequence: sequence}
	return c.sendJSON(ctx, http.MethodPatch, c.workflowURL(id), body, nil)
}

// ListTemplates returns every template.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var envelope struct {
		Data []Template `json:"data"`
	}
	if err := c.getJSON(ctx, c.approvalBase+"/templates/", &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// AddWorkflowToTemplate creates a workflow inside a template.
func (c *Client) AddWorkflowToTemplate(ctx context.Context, templateID string, in WorkflowInput) (Workflow, error) {
	if templateID == "" {
		return Workflow{}, ErrMissingID
	}
	if in.GroupRefs == nil {
		in.GroupRefs = []GroupRef{}
	}
	var out Workflow
	reqURL := fmt.Sprintf("%s/templates/%s/workflows/", c.approvalBase, url.PathEscape(templateID))
	err := c.sendJSON(ctx, http.MethodPost, reqURL, in, &out)
	return out, err
}

// AddWorkflow creates a workflow in the first template. It returns
// ErrNoTemplate, without attempting the create, when there are no templates.
func (c *Client) AddWorkflow(ctx context.Context, in WorkflowInput) (Workflow, error) {
	templates, err := c.ListTemplates(ctx)
	if err != nil {
		return Workflow{}, fmt.Errorf("listing templates: %w", err)
	}
	if len(templates) == 0 || templates[0].ID == "" {
		return Workflow{}, ErrNoTemplate
	}
	return c.AddWorkflowToTemplate(ctx, templates[0].ID, in)
}

// DestroyWorkflow deletes one workflow.
func (c *Client) DestroyWorkflow(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return c.sendJSON(ctx, http.MethodDelete, c.workflowURL(id)+"/", nil, nil)
}

// RemoveWorkflows deletes workflows concurrently. The first failure cancels
// the remaining deletes and is returned.
func (c *Client) RemoveWorkflows(ctx context.Context, ids []string) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDeletes)

	for _, id := range ids {
		g.Go(func() error {
			if err := c.DestroyWorkflow(gCtx, id); err != nil {
				return fmt.Errorf("removing workflow %s: %w", id, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *Client) workflowURL(id string) string {
	return fmt.Sprintf("%s/workflows/%s", c.approvalBase, url.PathEscape(id))
}
