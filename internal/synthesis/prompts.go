package synthesis

// CleanInstructions is the shared editorial preamble for every generation
// prompt, including headline prompts.
const CleanInstructions = `Write in British English as an experienced engineer and industry analyst for a professional audience in the resources sector.
Adhere strictly to the following guidelines:

RESEARCH & CONTENT:
- Present strictly factual, neutral, and professional content from verifiable public sources
- Avoid all promotional language, subjective adjectives (e.g. 'significant', 'key'), and corporate jargon
- Include specific technical and quantitative information (Mineral Resource figures, production targets, project CAPEX, battery specifications, policy details)
- Mention country/location of projects where relevant
- Focus on verifiable data, official announcements, and concrete technical details

STYLE & FORMATTING:
- Use British English spelling throughout
- Present information in well-structured, flowing paragraphs (no bullet points)
- Use standard abbreviations for units (Mt, kt, GWh, tpa, US$, EUR, RMB, CNY) with currency converted to US$
- Do not use em dashes or stock tickers
- Maintain professional, neutral tone without speculation or opinions
- Retain all technical numbers and units without spaces (e.g. 5Mt, 3.2GWh, 150ktpa)`

// synthesisPromptTemplate structures the report into three sections with
// distinct topical focuses. Takes the combined source text.
const synthesisPromptTemplate = CleanInstructions + `

TASK: Synthesise the following articles into a professional industry report following engineering and analyst standards. Structure the content into three distinct technical sections.

TECHNICAL REPORT STRUCTURE - Write EXACTLY 3 paragraphs with professional focus:

PARAGRAPH 1 - PROJECT & TECHNICAL DEVELOPMENTS (400-500 characters):
Present technical project details, resource estimates, production capacities, and engineering specifications. Include specific figures (Mt, kt, GWh, tpa), CAPEX values, locations, and technical parameters. Focus on quantitative project data and engineering facts. DO NOT include market prices or trading information.

[BLANK LINE - MANDATORY]

PARAGRAPH 2 - FINANCIAL & PRODUCTION METRICS (400-500 characters):
Detail production targets, financial figures (convert all currencies to US$), operational metrics, and quantitative performance data. Include specific production volumes, cost figures, revenue projections, and operational parameters. Focus exclusively on measurable financial and production information.

[BLANK LINE - MANDATORY]

PARAGRAPH 3 - INDUSTRY IMPLICATIONS & REGULATORY CONTEXT (400-500 characters):
Present factual industry responses, regulatory developments, policy impacts, and operational implications. Include official company statements, regulatory changes, and documented industry effects. Focus on verifiable consequences and official announcements without speculation.

CRITICAL WRITING GUIDELINES:
- Write complete, well-structured sentences with proper punctuation
- Use smooth transitions between sentences within each paragraph
- Each paragraph focuses on ONE unique aspect - no overlap
- Avoid repeating information across sections
- Ensure logical flow and natural progression between ideas
- Be concise and direct - eliminate redundant phrases
- Use varied sentence structure to maintain reader interest
- Each paragraph separated by blank lines
- Total length: 1200-1500 characters

SENTENCE QUALITY REQUIREMENTS:
- No sentence fragments or incomplete thoughts
- Proper subject-verb agreement and clear sentence structure
- Smooth transitions using connecting words (however, meanwhile, additionally, etc.)
- Avoid repetitive sentence starters
- Each sentence should contribute unique information

AVOID: Fragmented sentences, repetitive phrases like 'Market conditions continued to evolve', awkward punctuation, and disjointed transitions.

Source content: %s`

// regenerationPromptTemplate is the stricter, shorter prompt used for the
// single regeneration attempt when the first reply has no paragraph breaks.
const regenerationPromptTemplate = CleanInstructions + `

EMERGENCY INSTRUCTION: Create exactly 3 distinct paragraphs following professional engineering and analyst standards. Each paragraph must focus on a completely different technical aspect.

PROFESSIONAL REPORT STRUCTURE - Follow this exact template:

PARAGRAPH 1 - TECHNICAL & PROJECT DETAILS:
Focus exclusively on technical specifications, resource figures, project locations, engineering parameters, and production capacities. Include specific quantitative data (Mt, kt, GWh, tpa) and technical facts. DO NOT include financial figures or regulatory information.

[BLANK LINE]

PARAGRAPH 2 - FINANCIAL & OPERATIONAL METRICS:
Focus exclusively on production targets, CAPEX figures, operational costs, revenue data (all in US$), and quantitative performance metrics. Include specific financial and production numbers. DO NOT repeat technical specifications.

[BLANK LINE]

PARAGRAPH 3 - REGULATORY & INDUSTRY CONTEXT:
Focus exclusively on policy developments, regulatory changes, official company announcements, and documented industry implications. Include factual regulatory and corporate information. DO NOT repeat technical or financial data.

WRITING QUALITY REQUIREMENTS:
- Write complete, well-formed sentences with proper grammar
- Use smooth transitions and connecting words within paragraphs
- Each paragraph covers ONE unique topic only
- No overlapping information between sections
- No repetitive phrases or filler language
- Be direct, specific, and maintain professional tone
- Maximum 400 characters per paragraph
- Ensure logical flow between sentences
- Avoid sentence fragments and awkward punctuation

Source: %s`
