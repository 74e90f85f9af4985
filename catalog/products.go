package catalog

import "shopmart/core"

// demoProducts is the fixed storefront inventory. Prices are minor currency
// units; stock values are validation ceilings, never decremented.
var demoProducts = []core.Product{
	{ID: 1, Name: "Runner Azul", Price: 199999, Image: "/img/runner-azul.webp", Description: "Lightweight road runner in deep blue mesh.", Stock: 12},
	{ID: 2, Name: "Runner Roja", Price: 149999, Image: "/img/runner-roja.webp", Description: "Everyday trainer in crimson with gum sole.", Stock: 8},
	{ID: 3, Name: "Trail Negra", Price: 229999, Image: "/img/trail-negra.webp", Description: "All-terrain trail shoe, black with reflective laces.", Stock: 5},
	{ID: 4, Name: "Court Blanca", Price: 119999, Image: "/img/court-blanca.webp", Description: "Classic white court sneaker, leather upper.", Stock: 20},
	{ID: 5, Name: "Urban Gris", Price: 99999, Image: "/img/urban-gris.webp", Description: "Grey knit slip-on for city walking.", Stock: 15},
	{ID: 6, Name: "Sprint Verde", Price: 179999, Image: "/img/sprint-verde.webp", Description: "Track spike in neon green, carbon plate.", Stock: 6},
	{ID: 7, Name: "Hiker Marron", Price: 259999, Image: "/img/hiker-marron.webp", Description: "Waterproof brown hiking boot, ankle support.", Stock: 9},
	{ID: 8, Name: "Skate Naranja", Price: 109999, Image: "/img/skate-naranja.webp", Description: "Orange suede skate shoe with padded collar.", Stock: 11},
	{ID: 9, Name: "Lounge Beige", Price: 89999, Image: "/img/lounge-beige.webp", Description: "Beige recovery slide, molded footbed.", Stock: 25},
}
