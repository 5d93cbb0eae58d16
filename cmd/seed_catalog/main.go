// seed_catalog genera un script SQL para poblar marcas y categorías a partir
// del XML de catálogo exportado por el ERP del proveedor (Catalogo.xml).
// Esos exports suelen venir codificados en ISO-8859-1.
//
// Uso: go run ./cmd/seed_catalog [ruta/Catalogo.xml]
// Por defecto busca Catalogo.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogo struct {
	Articulos struct {
		Items []articulo `xml:"articulo"`
	} `xml:"articulos"`
}

type articulo struct {
	Marca     string `xml:"marca,attr"`
	Categoria struct {
		Nombre      string `xml:"nombre,attr"`
		Descripcion string `xml:"descripcion,attr"`
	} `xml:"categoria"`
}

func main() {
	xmlPath := "Catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var cat catalogo
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&cat); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	// Marcas y categorías únicas
	brandSet := make(map[string]struct{})
	catMap := make(map[string]string)
	for _, a := range cat.Articulos.Items {
		if m := strings.TrimSpace(a.Marca); m != "" {
			brandSet[m] = struct{}{}
		}
		if n := strings.TrimSpace(a.Categoria.Nombre); n != "" {
			catMap[n] = strings.TrimSpace(a.Categoria.Descripcion)
		}
	}

	var brands []string
	for b := range brandSet {
		brands = append(brands, b)
	}
	sort.Strings(brands)

	var catNames []string
	for c := range catMap {
		catNames = append(catNames, c)
	}
	sort.Strings(catNames)

	// Ruta del script de salida (relativa al módulo)
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Marcas y categorías del catálogo del proveedor\n")
	out.WriteString("-- Generado desde Catalogo.xml\n\n")

	out.WriteString("-- 1. Marcas\n")
	for _, b := range brands {
		fmt.Fprintf(out, "INSERT INTO brands (id, name) VALUES (gen_random_uuid(), '%s')\n", escapeSQL(b))
		out.WriteString("ON CONFLICT (name) DO NOTHING;\n")
	}
	out.WriteString("\n-- 2. Categorías\n")
	for _, c := range catNames {
		fmt.Fprintf(out, "INSERT INTO categories (id, name, description) VALUES (gen_random_uuid(), '%s', '%s')\n",
			escapeSQL(c), escapeSQL(catMap[c]))
		out.WriteString("ON CONFLICT (name) DO NOTHING;\n")
	}

	fmt.Printf("Generado %s: %d marcas, %d categorías\n", outPath, len(brands), len(catNames))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
