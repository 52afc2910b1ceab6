package banner

import "fmt"

// DefaultScenePrompt is the built-in banner scene used when no prompt is
// configured.
const DefaultScenePrompt = `Ultra-wide cinematic cityscape at dusk, viewed from a high rooftop, 3:1 banner composition. In the foreground, several diverse characters in futuristic streetwear are leaning on the railing, silhouetted against the glowing city: one character holding a holographic tablet displaying neon UI panels, another with a cybernetic arm and a long coat blowing in the wind, and a third character sitting on a crate with headphones, looking toward the horizon. The midground is a dense cluster of skyscrapers with reflective glass, animated billboards, floating drones, and suspended sky-bridges filled with tiny crowds of people. Flying cars and hovercrafts leave long light trails, curving across the sky from left to right, emphasizing the panoramic width of the scene. In the background, a massive ring-shaped structure floats above the city, partially obscured by volumetric fog and clouds. The setting sun is low on the horizon, casting golden and magenta light, creating strong rim lighting on the characters and buildings. Highly detailed, sharp focus, complex lighting, global illumination, soft atmospheric haze, subtle depth of field, cinematic color grading, rich reflections on glass and metal surfaces, hyperrealistic textures on buildings and clothing, high dynamic range, 8k concept art, perfect composition for a hero banner with plenty of negative space near the top and bottom for text overlay.`

// DefaultOutpaintPrompt guides Nova Canvas when extending the built-in
// scene sideways.
const DefaultOutpaintPrompt = "Seamlessly extend the futuristic cityscape scene to the left and right. Continue the same style: skyscrapers, neon lights, flying vehicles, atmospheric fog, dusk lighting. Maintain visual consistency with the center image."

// dimensionPrompt wraps the scene description with explicit size
// instructions. Omni tends to ignore bare resolution hints, so the wrapper
// repeats the dimensions before and after the content.
func dimensionPrompt(prompt string, width, height int) string {
	return fmt.Sprintf(`IMPORTANT: Generate an image with EXACTLY %d pixels width and EXACTLY %d pixels height. The aspect ratio must be exactly 3:1 (three times wider than tall). Resolution: %dx%d pixels.

Image content: %s

Remember: The output MUST be %dx%d pixels, no other size.`,
		width, height, width, height, prompt, width, height)
}
