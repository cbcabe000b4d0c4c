// Package commands holds the catalog of slash commands the chat offers.
package commands

import (
	"slices"
	"strings"
)

// Category groups commands by the platform area they touch.
type Category string

const (
	CategoryAgent         Category = "Agente"
	CategoryGateway       Category = "Gateway"
	CategoryRAG           Category = "RAG"
	CategoryMemory        Category = "Memory"
	CategoryIdentity      Category = "Identity"
	CategoryDeploy        Category = "Deploy"
	CategoryTesting       Category = "Testing"
	CategoryObservability Category = "Observability"
)

// Command is one entry of the slash menu.
type Command struct {
	Name        string   `json:"command"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}

var catalog = []Command{
	{"/novo_agente", "Criar um novo agente conversacional", CategoryAgent},
	{"/adicionar_ferramenta", "Conectar ferramenta via Gateway MCP", CategoryGateway},
	{"/fonte_rag", "Adicionar fonte de dados para RAG", CategoryRAG},
	{"/indexar", "Iniciar indexação de documentos", CategoryRAG},
	{"/memoria", "Configurar recurso de memória", CategoryMemory},
	{"/identidade", "Configurar autenticação e permissões", CategoryIdentity},
	{"/deploy", "Fazer deploy no AgentCore Runtime", CategoryDeploy},
	{"/teste", "Testar agente em ambiente sandbox", CategoryTesting},
	{"/observabilidade", "Ver métricas e trajetórias", CategoryObservability},
	{"/rollback", "Fazer rollback para versão anterior", CategoryDeploy},
}

// All returns the catalog in menu order.
func All() []Command {
	return slices.Clone(catalog)
}

// Lookup finds a command by exact name. The leading slash is optional.
func Lookup(name string) (Command, bool) {
	name = normalize(name)
	for _, c := range catalog {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// Filter returns the commands whose name starts with prefix, in menu order.
// An empty prefix or a lone slash returns the whole catalog.
func Filter(prefix string) []Command {
	prefix = normalize(prefix)
	var out []Command
	for _, c := range catalog {
		if strings.HasPrefix(c.Name, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// ByCategory returns the commands in category, in menu order. Category
// names match case-insensitively.
func ByCategory(category Category) []Command {
	var out []Command
	for _, c := range catalog {
		if strings.EqualFold(string(c.Category), string(category)) {
			out = append(out, c)
		}
	}
	return out
}

// IsSlash reports whether the input should open the command menu.
func IsSlash(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return name
}
