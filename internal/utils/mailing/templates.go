package mailing

import (
	"bytes"
	"html/template"
)

var (
	resetPasswordTemplate = template.Must(template.New("reset").Parse(
		`<p>Hello, {{.Username}}!</p>
<p>Someone asked to reset the password of your Foodgram account.
Use the link below within {{.ValidMinutes}} minutes to choose a new one:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>If it was not you, ignore this email.</p>`))

	newRecipeTemplate = template.Must(template.New("recipe").Parse(
		`<p>{{.AuthorName}} published a new recipe: <b>{{.RecipeName}}</b>.</p>
<p><a href="{{.Link}}">Open the recipe</a></p>`))
)

type (
	ResetPasswordData struct {
		Username     string
		Link         string
		ValidMinutes int
	}

	NewRecipeData struct {
		AuthorName string
		RecipeName string
		Link       string
	}
)

func RenderResetPassword(data ResetPasswordData) (string, error) {
	return render(resetPasswordTemplate, data)
}

func RenderNewRecipe(data NewRecipeData) (string, error) {
	return render(newRecipeTemplate, data)
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
