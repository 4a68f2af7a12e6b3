package chat

import "fmt"

var greetings = map[string]string{
	"Hao":      "你好！我是郝。很高兴认识你！",
	"Sofia":    "Oi! Tudo bem? Sou a Sofia. Prazer em conhecê-lo!",
	"Burkhart": "Guten Tag! Ich bin Burkhart. Freut mich.",
	"Marta":    "¡Hola! Soy Marta. ¡Qué alegría conocerte!",
	"Marco":    "Ciao! Sono Marco. Piacere di conoscerti!",
	"Leonie":   "Salut! Je suis Léonie. Enchantée de faire ta connaissance!",
	"Kenji":    "こんにちは！私は健二です。よろしくお願いします！",
	"Fatima":   "مرحبا! أنا فاطمة. سعيدة بلقائك!",
	"Aarav":    "नमस्ते! मैं आरव हूँ। आपसे मिलकर खुशी हुई!",
}

// Greeting returns the opening line a speaker sends when a chat starts.
// Speakers without a greeting in their own language fall back to English.
func Greeting(name string) string {
	if g, ok := greetings[name]; ok {
		return g
	}
	return fmt.Sprintf("Hello! I'm %s. Nice to meet you!", name)
}
